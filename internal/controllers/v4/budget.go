package v4

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// budgetStore adapts the model queries to the interface the rollover engine
// consumes. It resolves models.DB on every call so that it follows
// reconnects.
type budgetStore struct{}

func (budgetStore) MonthHasBudgets(month types.Month) (bool, error) {
	return models.MonthHasBudgets(models.DB, month)
}

func (budgetStore) MostRecentMonthWithBudgetsBefore(month types.Month) (types.Month, bool, error) {
	return models.MostRecentMonthWithBudgetsBefore(models.DB, month)
}

func (budgetStore) CopyBudgets(from, to types.Month) error {
	return models.CopyBudgets(models.DB, from, to)
}

// rollover serializes the budget rollover per month for all handlers.
var rollover = ledger.NewRollover(budgetStore{})

// RegisterBudgetRoutes registers the routes for monthly budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudgetList)
	r.GET("", GetBudgets)
	r.POST("", SetBudget)
	r.DELETE("", DeleteBudgets)
}

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uint64           `json:"categoryId" example:"8"`  // ID of the category
	Month      types.Month      `json:"month" example:"2024-05"` // Month the allocation is for
	Amount     *decimal.Decimal `json:"amount" example:"250"`    // Allocated amount. null or a non-positive value deletes the allocation
}

type BudgetLinks struct {
	Category string `json:"category" example:"https://example.com/api/v4/categories/8"` // The category the budget belongs to
}

type Budget struct {
	models.Timestamps
	CategoryID uint64          `json:"categoryId" example:"8"`       // ID of the category
	Month      types.Month     `json:"month" example:"2024-05"`      // Month the allocation is for
	Amount     decimal.Decimal `json:"budgetAmount" example:"250"`   // Allocated amount
	Links      BudgetLinks     `json:"links"`
}

func newBudget(c *gin.Context, model models.MonthlyBudget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		Timestamps: model.Timestamps,
		CategoryID: model.CategoryID,
		Month:      model.Month,
		Amount:     model.Amount,
		Links: BudgetLinks{
			Category: fmt.Sprintf("%s/v4/categories/%d", url, model.CategoryID),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                    // The month's budget allocations
	Error *string  `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                    // Data for the budget allocation
	Error *string `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v4/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// @Summary		Get budgets
// @Description	Returns the budget allocations of a month. When the month has none, the nearest earlier month with allocations is copied over first.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	BudgetListResponse
// @Failure		500		{object}	BudgetListResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v4/budgets [get]
func GetBudgets(c *gin.Context) {
	month, err := bindMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	err = rollover.EnsureBudgetsForMonth(month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	budgets, err := models.BudgetsForMonth(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// @Summary		Set budget
// @Description	Sets the budget allocation for a category and month. A null or non-positive amount deletes the allocation.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Success		204
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget allocation"
// @Router			/v4/budgets [post]
func SetBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	err = models.SetBudget(models.DB, editable.CategoryID, editable.Month, editable.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	// A deletion has no body to return
	if editable.Amount == nil || !editable.Amount.IsPositive() {
		c.JSON(http.StatusNoContent, nil)
		return
	}

	var budget models.MonthlyBudget
	err = models.DB.
		Where("category_id = ? AND month = ?", editable.CategoryID, editable.Month).
		Take(&budget).
		Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budgets
// @Description	Deletes all budget allocations of a month
// @Tags			Budgets
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v4/budgets [delete]
func DeleteBudgets(c *gin.Context) {
	month, err := bindMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.
		Where("month = ?", month).
		Delete(&models.MonthlyBudget{}).
		Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
