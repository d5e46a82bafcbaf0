package v4

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
)

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v4
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v4 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Dependent resources delete first so that no deletion guard fires
	resources := []any{
		models.MonthlyBudget{},
		models.Transaction{},
		models.Category{},
		models.CategoryGroup{},
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
