package v4

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
)

// CategoryGroupEditable represents all user configurable parameters
type CategoryGroupEditable struct {
	Name  string `json:"name" example:"Fixed costs" default:""` // Name of the category group
	Color string `json:"color" example:"#0ea5e9" default:""`    // Palette color. Empty means the color is derived from the name
}

func (editable CategoryGroupEditable) model() models.CategoryGroup {
	return models.CategoryGroup{
		Name:  editable.Name,
		Color: editable.Color,
	}
}

type CategoryGroupLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v4/category-groups/4"`       // The category group itself
	Categories string `json:"categories" example:"https://example.com/api/v4/categories?group=4"` // Categories in this group
}

type CategoryGroup struct {
	models.DefaultModel
	CategoryGroupEditable
	SortOrder int           `json:"sortOrder" example:"2"`           // Position of the group in the budget view
	Display   string        `json:"displayColor" example:"#0ea5e9"`  // The effective color, derived from the name when none is stored
	Links     CategoryGroupLinks `json:"links"`
}

func newCategoryGroup(c *gin.Context, model models.CategoryGroup) CategoryGroup {
	url := c.GetString(string(models.DBContextURL))

	return CategoryGroup{
		DefaultModel: model.DefaultModel,
		CategoryGroupEditable: CategoryGroupEditable{
			Name:  model.Name,
			Color: model.Color,
		},
		SortOrder: model.SortOrder,
		Display:   model.DisplayColor(),
		Links: CategoryGroupLinks{
			Self:       fmt.Sprintf("%s/v4/category-groups/%d", url, model.ID),
			Categories: fmt.Sprintf("%s/v4/categories?group=%d", url, model.ID),
		},
	}
}

type CategoryGroupListResponse struct {
	Data  []CategoryGroup `json:"data"`                                                      // List of category groups
	Error *string         `json:"error" example:"the category group name is already in use"` // The error, if any occurred
}

type CategoryGroupCreateResponse struct {
	Data  []CategoryGroupResponse `json:"data"`                                                      // List of the created category groups or their respective error
	Error *string                 `json:"error" example:"the category group name is already in use"` // The error, if any occurred
}

func (c *CategoryGroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryGroupResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryGroupResponse struct {
	Data  *CategoryGroup `json:"data"`                                                      // Data for the category group
	Error *string        `json:"error" example:"the category group name is already in use"` // The error, if any occurred
}

// CategoryGroupReorder is the full ordered list of group IDs for the reorder
// endpoint.
type CategoryGroupReorder struct {
	IDs []uint64 `json:"ids" example:"4,2,7"` // All group IDs, in their new display order
}
