package v4_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})

	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        types.NewDate(2024, time.May, 12),
		Description: "Weekly market run",
		Account:     "Checking",
		Amount:      decimal.NewFromFloat(14.03),
		CategoryID:  category.Data.ID,
	})

	require.NotNil(suite.T(), transaction.Data)
	assert.Equal(suite.T(), "Weekly market run", transaction.Data.Description)
	assert.True(suite.T(), transaction.Data.Amount.Equal(decimal.NewFromFloat(14.03)))
}

func (suite *TestSuiteStandard) TestTransactionsCreateNonPositiveAmount() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/transactions", []v4.TransactionEditable{
		{CategoryID: category.Data.ID, Amount: decimal.NewFromFloat(-5)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), models.ErrTransactionAmountNotPositive.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestTransactionsCreateUnknownCategory() {
	// Foreign category IDs are tolerated, the transaction is stored
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{CategoryID: 4084})
	assert.Equal(suite.T(), uint64(4084), transaction.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionsGetFiltered() {
	checking := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries"})
	salary := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Salary", Rule: models.CategoryRuleIncome})

	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 2),
		Account:    "DKB Checking",
		CategoryID: checking.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:       types.NewDate(2024, time.May, 28),
		Account:    "Cash",
		CategoryID: checking.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        types.NewDate(2024, time.June, 1),
		Account:     "DKB Checking",
		IsIncome:    true,
		CategoryID:  salary.Data.ID,
		Description: "Salary June",
	})

	tests := []struct {
		query string
		count int
	}{
		{"month=2024-05", 2},
		{"month=2024-06", 1},
		{fmt.Sprintf("category=%d", checking.Data.ID), 2},
		{"account=DKB*", 2},
		{"account=DKB*&month=2024-05", 1},
		{"isIncome=true", 1},
		{"search=salary", 1},
		{"", 3},
		{"limit=2", 2},
		{"offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v4/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v4.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsSortedNewestFirst() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})

	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        types.NewDate(2024, time.May, 2),
		Description: "Older",
		CategoryID:  category.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        types.NewDate(2024, time.May, 28),
		Description: "Newer",
		CategoryID:  category.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Newer", response.Data[0].Description)
	assert.Equal(suite.T(), "Older", response.Data[1].Description)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{
		Description: "Weekly market run",
		CategoryID:  category.Data.ID,
	})

	// A partial update must leave the amount untouched
	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"note": "Includes the birthday cake",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Includes the birthday cake", response.Data.Note)
	assert.True(suite.T(), response.Data.Amount.Equal(transaction.Data.Amount))
}

func (suite *TestSuiteStandard) TestTransactionsUpdateZeroAmount() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{CategoryID: 1})

	// An explicit zero is not a valid amount
	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount": 0,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// The stored amount is unchanged
	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v4.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(transaction.Data.Amount))
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{CategoryID: 1})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
