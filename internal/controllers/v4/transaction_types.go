package v4

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date        types.Date      `json:"date" example:"2024-05-12"`                                                                     // Day the transaction occurred. Defaults to today
	Description string          `json:"description" example:"Weekly market run" default:""`                                            // What the transaction was for
	Account     string          `json:"account" example:"Checking" default:""`                                                         // Free-text account label
	IsIncome    bool            `json:"isIncome" example:"false" default:"false"`                                                      // Whether money came in or went out
	Amount      decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" multipleOf:"0.00000001"`                           // Positive magnitude of the transaction
	CategoryID  uint64          `json:"categoryId" example:"8"`                                                                        // ID of the category
	Note        string          `json:"note" example:"Includes the birthday cake" default:""`                                          // A note
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date,
		Description: editable.Description,
		Account:     editable.Account,
		IsIncome:    editable.IsIncome,
		Amount:      editable.Amount,
		CategoryID:  editable.CategoryID,
		Note:        editable.Note,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v4/transactions/17"`   // The transaction itself
	Category string `json:"category" example:"https://example.com/api/v4/categories/8"` // The category of the transaction
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Description: model.Description,
			Account:     model.Account,
			IsIncome:    model.IsIncome,
			Amount:      model.Amount,
			CategoryID:  model.CategoryID,
			Note:        model.Note,
		},
		Links: TransactionLinks{
			Self:     fmt.Sprintf("%s/v4/transactions/%d", url, model.ID),
			Category: fmt.Sprintf("%s/v4/categories/%d", url, model.CategoryID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                      // List of transactions
	Error      *string       `json:"error" example:"transaction amounts must be larger than zero"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                         // List of the created transactions or their respective error
	Error *string               `json:"error" example:"transaction amounts must be larger than zero"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                         // Data for the transaction
	Error *string      `json:"error" example:"transaction amounts must be larger than zero"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Month      time.Time `form:"month" time_format:"2006-01" time_utc:"1" filterField:"false"` // By month of the transaction date
	CategoryID *uint64   `form:"category"`                                                     // By ID of the category
	IsIncome   bool      `form:"isIncome"`                                                     // Only income or only spending transactions
	Account    string    `form:"account" filterField:"false"`                                  // Glob match on the account label, e.g. "DKB*"
	Search     string    `form:"search" filterField:"false"`                                   // By string in description or note
	Offset     uint      `form:"offset" filterField:"false"`                                   // The offset of the first transaction returned. Defaults to 0.
	Limit      int       `form:"limit" filterField:"false"`                                    // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	transaction := models.Transaction{
		IsIncome: f.IsIncome,
	}

	if f.CategoryID != nil {
		transaction.CategoryID = *f.CategoryID
	}

	return transaction
}
