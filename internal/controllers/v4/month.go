package v4

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterMonthRoutes registers the routes for the month report with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMonth)
	r.GET("", GetMonth)
}

// Month is the full report for one month: the totals, the flat category
// rows and the grouped sections.
type Month struct {
	Month types.Month `json:"month" example:"2024-05"` // The month the report is for

	Budgeted decimal.Decimal `json:"budgeted" example:"2100"`  // Sum of the budgets of budgeted spending categories
	Spent    decimal.Decimal `json:"spent" example:"1336.23"`  // Net spending over all spending categories
	Income   decimal.Decimal `json:"income" example:"2317.34"` // Sum earned over all income categories

	Rows   []ledger.ReportRow    `json:"rows"`   // Flat per-category rows in display order
	Groups []ledger.GroupSection `json:"groups"` // The rows bucketed into display sections
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                  // Data for the month
	Error *string `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v4/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get month report
// @Description	Returns the month's totals, category rows and grouped sections. When the month has no budgets, the nearest earlier month with budgets is copied over first.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v4/months [get]
func GetMonth(c *gin.Context) {
	month, err := bindMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	err = rollover.EnsureBudgetsForMonth(month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	data, err := buildMonth(month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}

// buildMonth reads the month's resources and computes the report.
func buildMonth(month types.Month) (Month, error) {
	categories, err := models.Categories(models.DB)
	if err != nil {
		return Month{}, err
	}

	byID := make(map[uint64]models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	groups, err := models.CategoryGroups(models.DB)
	if err != nil {
		return Month{}, err
	}

	transactions, err := models.TransactionsForMonth(models.DB, month)
	if err != nil {
		return Month{}, err
	}

	budgets, err := models.BudgetsByCategory(models.DB, month)
	if err != nil {
		return Month{}, err
	}

	net := ledger.NetByCategory(transactions, byID)
	report := ledger.BuildReport(categories, net, budgets)

	return Month{
		Month:    month,
		Budgeted: report.Budgeted,
		Spent:    report.Spent,
		Income:   report.Income,
		Rows:     report.Rows,
		Groups:   ledger.BuildGroupedReport(categories, groups, net, budgets),
	}, nil
}
