package v4_test

import (
	"fmt"
	"net/http"
	"testing"

	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCategoriesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestCategory(t, v4.CategoryEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v4/categories", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v4.CategoryListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string // path at the categories endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Category with this ID", "4084", http.StatusNotFound},
		{"Not a valid ID", "NotANumber", http.StatusBadRequest},
		{"Category exists", fmt.Sprint(createTestCategory(suite.T(), v4.CategoryEditable{}).Data.ID), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v4/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	group := createTestCategoryGroup(suite.T(), v4.CategoryGroupEditable{Name: "Fixed costs"})

	category := createTestCategory(suite.T(), v4.CategoryEditable{
		Name:    "Rent",
		Rule:    models.CategoryRuleSpending,
		GroupID: &group.Data.ID,
	})

	require.NotNil(suite.T(), category.Data)
	assert.Equal(suite.T(), "Rent", category.Data.Name)
	require.NotNil(suite.T(), category.Data.GroupID)
	assert.Equal(suite.T(), group.Data.ID, *category.Data.GroupID)
}

func (suite *TestSuiteStandard) TestCategoriesCreateInvalid() {
	tests := []struct {
		name     string
		editable v4.CategoryEditable
		expected string
	}{
		{"Empty name", v4.CategoryEditable{Name: " ", Rule: models.CategoryRuleSpending}, models.ErrCategoryNameEmpty.Error()},
		{"Invalid rule", v4.CategoryEditable{Name: "Windfalls", Rule: "windfall"}, models.ErrCategoryRuleInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v4/categories", []v4.CategoryEditable{tt.editable})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v4.CategoryCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.expected, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreateDuplicateName() {
	_ = createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries"})
	r := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries"}, http.StatusBadRequest)
	assert.Nil(suite.T(), r.Data)
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	group := createTestCategoryGroup(suite.T(), v4.CategoryGroupEditable{Name: "Fun"})

	_ = createTestCategory(suite.T(), v4.CategoryEditable{Name: "Salary", Rule: models.CategoryRuleIncome})
	_ = createTestCategory(suite.T(), v4.CategoryEditable{Name: "Eating out", Rule: models.CategoryRuleSpending, GroupID: &group.Data.ID})
	_ = createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries", Rule: models.CategoryRuleSpending})

	tests := []struct {
		query string
		count int
	}{
		{"rule=income", 1},
		{"rule=spending", 2},
		{fmt.Sprintf("group=%d", group.Data.ID), 1},
		{"name=Groceries", 1},
		{"search=eating", 1},
		{"", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v4/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v4.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{Name: "Groceries"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"note": "Everything edible",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v4.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Everything edible", updated.Data.Note)
	assert.Equal(suite.T(), "Groceries", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestCategoriesUpdateRuleImmutable() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{Rule: models.CategoryRuleSpending})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"rule": "income",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryRuleImmutable.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesDeleteGuard() {
	category := createTestCategory(suite.T(), v4.CategoryEditable{})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{CategoryID: category.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryStillReferenced.Error(), *response.Error)
}
