package v4

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name    string              `json:"name" example:"Groceries" default:""`                 // Name of the category
	Rule    models.CategoryRule `json:"rule" example:"spending" default:"spending"`          // income or spending. Immutable after creation
	GroupID *uint64             `json:"groupId" example:"4"`                                 // ID of the category group, null for "Unassigned"
	Note    string              `json:"note" example:"Everything edible" default:""`         // Notes about the category
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:    editable.Name,
		Rule:    editable.Rule,
		GroupID: editable.GroupID,
		Note:    editable.Note,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v4/categories/8"`                  // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v4/transactions?category=8"` // Transactions referencing the category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:    model.Name,
			Rule:    model.Rule,
			GroupID: model.GroupID,
			Note:    model.Note,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v4/categories/%d", url, model.ID),
			Transactions: fmt.Sprintf("%s/v4/transactions?category=%d", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                // List of Categories
	Error      *string     `json:"error" example:"the category name is already in use"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                          // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the category name is already in use"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                // Data for the Category
	Error *string   `json:"error" example:"the category name is already in use"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name    string  `form:"name" filterField:"false"`   // By name
	Note    string  `form:"note" filterField:"false"`   // By note
	Rule    string  `form:"rule"`                       // By rule (income or spending)
	GroupID *uint64 `form:"group"`                      // By ID of the category group
	Search  string  `form:"search" filterField:"false"` // By string in name or note
	Offset  uint    `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit   int     `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Rule:    models.CategoryRule(f.Rule),
		GroupID: f.GroupID,
	}
}
