package configgen

import "github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"

// Reshape nests converted rows of one sheet as category -> name -> entry.
//
// Categories appear in the order they are first seen. A later row with the
// same category and name replaces the earlier entry.
func Reshape(rows []models.ConvertedRow) *models.CategoryMap {
	categories := models.NewCategoryMap()
	for _, row := range rows {
		if _, ok := categories.Get(row.Category); !ok {
			categories.Set(row.Category, models.NewParameterMap())
		}
	}

	for _, row := range rows {
		params, _ := categories.Get(row.Category)
		params.Set(row.Name, row.Value)
	}
	return categories
}
