package v4_test

import (
	"net/http"
	"time"

	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthRequiresMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestMonthReport verifies the totals, row order and grouped sections of the
// month report.
func (suite *TestSuiteStandard) TestMonthReport() {
	t := suite.T()

	fixedCosts := createTestCategoryGroup(t, v4.CategoryGroupEditable{Name: "Fixed costs"})

	salary := createTestCategory(t, v4.CategoryEditable{Name: "Salary", Rule: models.CategoryRuleIncome})
	rent := createTestCategory(t, v4.CategoryEditable{Name: "Rent", Rule: models.CategoryRuleSpending, GroupID: &fixedCosts.Data.ID})
	groceries := createTestCategory(t, v4.CategoryEditable{Name: "Groceries", Rule: models.CategoryRuleSpending})

	month := types.NewMonth(2024, time.May)

	rentBudget := decimal.NewFromFloat(800)
	groceriesBudget := decimal.NewFromFloat(250)
	setTestBudget(t, v4.BudgetEditable{CategoryID: rent.Data.ID, Month: month, Amount: &rentBudget})
	setTestBudget(t, v4.BudgetEditable{CategoryID: groceries.Data.ID, Month: month, Amount: &groceriesBudget})

	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 1),
		IsIncome:   true,
		Amount:     decimal.NewFromFloat(2600),
		CategoryID: salary.Data.ID,
	})
	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 1),
		Amount:     decimal.NewFromFloat(850),
		CategoryID: rent.Data.ID,
	})
	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 12),
		Amount:     decimal.NewFromFloat(120),
		CategoryID: groceries.Data.ID,
	})
	// A refund larger than the purchases would put a category in profit,
	// here it just reduces the spending.
	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 14),
		IsIncome:   true,
		Amount:     decimal.NewFromFloat(20),
		CategoryID: groceries.Data.ID,
	})

	r := test.Request(t, http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v4.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	report := *response.Data
	assert.True(t, report.Budgeted.Equal(decimal.NewFromFloat(1050)), "budgeted is %s", report.Budgeted)
	assert.True(t, report.Spent.Equal(decimal.NewFromFloat(950)), "spent is %s", report.Spent)
	assert.True(t, report.Income.Equal(decimal.NewFromFloat(2600)), "income is %s", report.Income)

	// Rent is over budget (106.25%), so it sorts before groceries (40%).
	// Salary has no budget and sorts last.
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Rent", report.Rows[0].Name)
	assert.Equal(t, "Groceries", report.Rows[1].Name)
	assert.Equal(t, "Salary", report.Rows[2].Name)
	assert.True(t, report.Rows[0].PctUsed.Equal(decimal.NewFromFloat(106.25)))

	// Sections: Income first, then Fixed costs, then Unassigned
	require.Len(t, report.Groups, 3)
	assert.Equal(t, ledger.IncomeSectionName, report.Groups[0].Name)
	assert.Equal(t, "Fixed costs", report.Groups[1].Name)
	assert.Equal(t, ledger.UnassignedSectionName, report.Groups[2].Name)

	assert.True(t, report.Groups[0].Income)
	assert.True(t, report.Groups[1].Spent.Equal(decimal.NewFromFloat(850)))
	assert.True(t, report.Groups[2].Spent.Equal(decimal.NewFromFloat(100)))
}

// TestMonthReportProfit verifies the asymmetry between the flat spent total
// and the section spent totals for categories in profit.
func (suite *TestSuiteStandard) TestMonthReportProfit() {
	t := suite.T()

	groceries := createTestCategory(t, v4.CategoryEditable{Name: "Groceries"})
	household := createTestCategory(t, v4.CategoryEditable{Name: "Household"})

	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 3),
		Amount:     decimal.NewFromFloat(50),
		CategoryID: groceries.Data.ID,
	})
	// Household is in profit for the month
	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 7),
		IsIncome:   true,
		Amount:     decimal.NewFromFloat(20),
		CategoryID: household.Data.ID,
	})

	r := test.Request(t, http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v4.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	// The flat total nets the profit, the section total ignores it
	assert.True(t, response.Data.Spent.Equal(decimal.NewFromFloat(30)), "spent is %s", response.Data.Spent)

	require.Len(t, response.Data.Groups, 1)
	section := response.Data.Groups[0]
	assert.Equal(t, ledger.UnassignedSectionName, section.Name)
	assert.True(t, section.Spent.Equal(decimal.NewFromFloat(50)), "section spent is %s", section.Spent)
}

// TestMonthReportRollover verifies that the report triggers the rollover.
func (suite *TestSuiteStandard) TestMonthReportRollover() {
	t := suite.T()

	groceries := createTestCategory(t, v4.CategoryEditable{Name: "Groceries"})

	amount := decimal.NewFromFloat(250)
	setTestBudget(t, v4.BudgetEditable{CategoryID: groceries.Data.ID, Month: types.NewMonth(2024, time.March), Amount: &amount})

	r := test.Request(t, http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v4.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	assert.True(t, response.Data.Budgeted.Equal(amount))
	require.Len(t, response.Data.Rows, 1)
	require.NotNil(t, response.Data.Rows[0].Budget)
	assert.True(t, response.Data.Rows[0].Budget.Equal(amount))
}

// TestMonthReportSkipsUnknownCategories verifies that transactions whose
// category does not exist stay out of the aggregation.
func (suite *TestSuiteStandard) TestMonthReportSkipsUnknownCategories() {
	t := suite.T()

	groceries := createTestCategory(t, v4.CategoryEditable{Name: "Groceries"})

	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 3),
		Amount:     decimal.NewFromFloat(50),
		CategoryID: groceries.Data.ID,
	})
	_ = createTestTransaction(t, v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 4),
		Amount:     decimal.NewFromFloat(999),
		CategoryID: 4084,
	})

	r := test.Request(t, http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v4.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)
	assert.True(t, response.Data.Spent.Equal(decimal.NewFromFloat(50)), "spent is %s", response.Data.Spent)
}
