package v4_test

import (
	"net/http"
	"testing"
	"time"

	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetsSet() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})

	amount := decimal.NewFromFloat(250)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/budgets", v4.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      types.NewMonth(2024, time.May),
		Amount:     &amount,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Amount.Equal(amount))
}

func (suite *TestSuiteStandard) TestBudgetsSetUnknownCategory() {
	amount := decimal.NewFromFloat(250)
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/budgets", v4.BudgetEditable{
		CategoryID: 4084,
		Month:      types.NewMonth(2024, time.May),
		Amount:     &amount,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsSetNullDeletes() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})
	month := types.NewMonth(2024, time.May)

	amount := decimal.NewFromFloat(250)
	setTestBudget(suite.T(), v4.BudgetEditable{CategoryID: category.Data.ID, Month: month, Amount: &amount})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/budgets", v4.BudgetEditable{
		CategoryID: category.Data.ID,
		Month:      month,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v4/budgets?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}

// TestBudgetsRollover verifies that reading a month without budgets copies
// the allocations of the nearest earlier month that has some.
func (suite *TestSuiteStandard) TestBudgetsRollover() {
	groceries := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries"})
	rent := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Rent"})

	amount := decimal.NewFromFloat(250)
	rentAmount := decimal.NewFromFloat(850)
	setTestBudget(suite.T(), v4.BudgetEditable{CategoryID: groceries.Data.ID, Month: types.NewMonth(2024, time.January), Amount: &amount})
	setTestBudget(suite.T(), v4.BudgetEditable{CategoryID: rent.Data.ID, Month: types.NewMonth(2024, time.March), Amount: &rentAmount})

	// 2024-05 has no budgets, so 2024-03 is copied, not 2024-01
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/budgets?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), rent.Data.ID, response.Data[0].CategoryID)
	assert.True(suite.T(), response.Data[0].Amount.Equal(rentAmount))

	// The copy is persisted: deleting the source does not affect 2024-05
	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v4/budgets?month=2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v4/budgets?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestBudgetsRolloverNoPriorMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/budgets?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestBudgetsMonthRequired() {
	tests := []struct {
		name   string
		method string
	}{
		{"GET without month", http.MethodGet},
		{"DELETE without month", http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, "http://example.com/v4/budgets", "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
