package v4_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	_ = createTestCategoryGroup(suite.T(), v4.CategoryGroupEditable{Name: "TestCleanup"})
	category := createTestCategory(suite.T(), v4.CategoryEditable{})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.NewFromFloat(17.32), CategoryID: category.Data.ID})

	amount := decimal.NewFromFloat(100)
	setTestBudget(suite.T(), v4.BudgetEditable{CategoryID: category.Data.ID, Month: types.NewMonth(2024, time.May), Amount: &amount})

	tests := []string{
		"http://example.com/v4/categories",
		"http://example.com/v4/category-groups",
		"http://example.com/v4/transactions",
		"http://example.com/v4/budgets?month=2024-05",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v4?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v4?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v4?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
