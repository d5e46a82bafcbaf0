package v4

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterImportRoutes registers the routes for the import with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", CreateImport)
}

// ImportBody is the accepted import document. It matches the transactions
// part of the export shape.
type ImportBody struct {
	Transactions []ExportTransaction `json:"transactions"` // Transactions to import
}

type ImportSummary struct {
	Count int `json:"count" example:"38"` // Number of transactions imported
}

type ImportResponse struct {
	Data  *ImportSummary `json:"data"`                                                           // Summary of the import
	Error *string        `json:"error" example:"transaction amounts must be larger than zero"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v4/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import transactions
// @Description	Imports transactions in the export document shape. Category IDs are taken as-is: transactions referencing unknown categories are stored and skipped during aggregation.
// @Tags			Import
// @Produce		json
// @Success		201				{object}	ImportResponse
// @Failure		400				{object}	ImportResponse
// @Failure		500				{object}	ImportResponse
// @Param			transactions	body		ImportBody	true	"Import document"
// @Router			/v4/import [post]
func CreateImport(c *gin.Context) {
	var body ImportBody

	err := httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	// All or nothing: a single invalid transaction rolls the import back
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range body.Transactions {
			transaction := row.model()

			err := tx.Create(&transaction).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Data: &ImportSummary{
			Count: len(body.Transactions),
		},
	})
}
