package v4

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterExportRoutes registers the routes for the export with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", GetExport)
}

// Export is a snapshot of one month: every category, the month's budget
// allocations and the month's transactions. It is the document the import
// endpoint accepts the transactions of.
type Export struct {
	Month      types.Month `json:"month" example:"2024-05"`                      // The exported month
	ExportedAt time.Time   `json:"exportedAt" example:"2024-06-01T19:28:44Z"`    // Time the export was created

	Categories   []models.Category      `json:"categories"`   // All categories, not only the ones with activity
	Budgets      []models.MonthlyBudget `json:"budgets"`      // The month's budget allocations
	Transactions []ExportTransaction    `json:"transactions"` // The month's transactions
}

// IncomeFlag is the direction marker of an exported transaction. It is
// written as 0 for spending and 1 for income. Booleans are accepted when
// reading so that the API's transaction shape can be imported, too.
type IncomeFlag bool

func (f IncomeFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}

	return []byte("0"), nil
}

func (f *IncomeFlag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("isIncome must be 0, 1 or a boolean, got %s", string(data))
	}

	return nil
}

// ExportTransaction is a transaction row of the export document. The
// document shape differs from the API shape: the income flag is a 0|1
// number and the note key is "notes".
type ExportTransaction struct {
	Date        types.Date      `json:"date" example:"2024-05-12"`               // Day the transaction occurred
	Description string          `json:"description" example:"Weekly market run"` // What the transaction was for
	Account     string          `json:"account" example:"Checking"`              // Free-text account label
	IsIncome    IncomeFlag      `json:"isIncome" example:"0"`                    // 1 when money came in, 0 when it went out
	Amount      decimal.Decimal `json:"amount" example:"14.03"`                  // Positive magnitude of the transaction
	CategoryID  uint64          `json:"categoryId" example:"8"`                  // ID of the category
	Notes       string          `json:"notes" example:"Includes the cake"`       // A note
}

// UnmarshalJSON also accepts the API's "note" key for the note.
func (t *ExportTransaction) UnmarshalJSON(data []byte) error {
	type wire ExportTransaction
	aux := struct {
		*wire
		Note string `json:"note"`
	}{wire: (*wire)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if t.Notes == "" {
		t.Notes = aux.Note
	}

	return nil
}

func newExportTransaction(model models.Transaction) ExportTransaction {
	return ExportTransaction{
		Date:        model.Date,
		Description: model.Description,
		Account:     model.Account,
		IsIncome:    IncomeFlag(model.IsIncome),
		Amount:      model.Amount,
		CategoryID:  model.CategoryID,
		Notes:       model.Note,
	}
}

func (t ExportTransaction) model() models.Transaction {
	return models.Transaction{
		Date:        t.Date,
		Description: t.Description,
		Account:     t.Account,
		IsIncome:    bool(t.IsIncome),
		Amount:      t.Amount,
		CategoryID:  t.CategoryID,
		Note:        t.Notes,
	}
}

type ExportResponse struct {
	Data  *Export `json:"data"`                                                  // The export document
	Error *string `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v4/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export month
// @Description	Returns a snapshot of the month with all categories, the month's budgets and its transactions
// @Tags			Export
// @Produce		json
// @Success		200		{object}	ExportResponse
// @Failure		400		{object}	ExportResponse
// @Failure		500		{object}	ExportResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v4/export [get]
func GetExport(c *gin.Context) {
	month, err := bindMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	// The export reflects what a report for the month would use, so the
	// rollover runs first here, too.
	err = rollover.EnsureBudgetsForMonth(month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	categories, err := models.Categories(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	budgets, err := models.BudgetsForMonth(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	transactions, err := models.TransactionsForMonth(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	rows := make([]ExportTransaction, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, newExportTransaction(transaction))
	}

	data := Export{
		Month:        month,
		ExportedAt:   time.Now().In(time.UTC),
		Categories:   categories,
		Budgets:      budgets,
		Transactions: rows,
	}

	c.JSON(http.StatusOK, ExportResponse{Data: &data})
}
