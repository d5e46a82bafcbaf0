package ledger

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var hundred = decimal.NewFromInt(100)

// ReportRow is the month report line for a single category.
type ReportRow struct {
	CategoryID uint64              `json:"categoryId" example:"8"`   // ID of the category
	Name       string              `json:"name" example:"Groceries"` // Name of the category
	Rule       models.CategoryRule `json:"rule" example:"spending"`  // Rule of the category
	GroupID    *uint64             `json:"groupId" example:"4"`      // Group of the category, null for "Unassigned"

	// Spent is the displayed amount for the category. For income categories
	// it is the amount earned. For spending categories a negative value
	// means the category is in profit for the month.
	Spent decimal.Decimal `json:"spent" example:"133.70"`

	Budget    *decimal.Decimal `json:"budget" example:"250"`    // Allocated budget, null when none is set
	HasBudget bool             `json:"hasBudget" example:"true"` // Whether a positive budget is set

	// PctUsed is spent/budget * 100. It is also computed for profit rows,
	// where it is negative; consumers render those as a profit badge, not
	// as a percentage bar.
	PctUsed decimal.Decimal `json:"pctUsed" example:"53.48"`
}

// overBudget reports whether the row has used more than its full budget.
func (r ReportRow) overBudget() bool {
	return r.HasBudget && r.PctUsed.GreaterThan(hundred)
}

// Report is the flat month report over all categories.
type Report struct {
	Rows []ReportRow `json:"rows"` // Per-category rows, in display order

	Budgeted decimal.Decimal `json:"budgeted" example:"2100"`   // Sum of budgets of budgeted spending categories
	Spent    decimal.Decimal `json:"spent" example:"1336.23"`   // Net spending over all spending categories. Profit rows reduce this total
	Income   decimal.Decimal `json:"income" example:"2317.34"`  // Sum earned over all income categories
}

// BuildReport combines the categories, their aggregated net sums and the
// month's budget allocations into the flat month report.
//
// Categories with nothing to show (no net activity and no budget) are left
// out. The row order is: budgeted categories before unbudgeted ones;
// over-budget rows before rows within budget, each by descending percentage
// used; unbudgeted rows by descending amount spent.
func BuildReport(categories []models.Category, net map[uint64]decimal.Decimal, budgets map[uint64]decimal.Decimal) Report {
	report := Report{Rows: make([]ReportRow, 0, len(categories))}

	for _, category := range categories {
		row := buildRow(category, net[category.ID], budgets)

		switch category.Rule {
		case models.CategoryRuleIncome:
			report.Income = report.Income.Add(row.Spent)
		case models.CategoryRuleSpending:
			report.Spent = report.Spent.Add(row.Spent)
			if row.HasBudget {
				report.Budgeted = report.Budgeted.Add(*row.Budget)
			}
		}

		// Nothing spent and nothing budgeted means nothing to show
		if row.Spent.IsZero() && !row.HasBudget {
			continue
		}

		report.Rows = append(report.Rows, row)
	}

	slices.SortStableFunc(report.Rows, compareRows)

	return report
}

func buildRow(category models.Category, net decimal.Decimal, budgets map[uint64]decimal.Decimal) ReportRow {
	row := ReportRow{
		CategoryID: category.ID,
		Name:       category.Name,
		Rule:       category.Rule,
		GroupID:    category.GroupID,
		Spent:      spentFor(category, net),
	}

	if budget, ok := budgets[category.ID]; ok {
		row.Budget = &budget
		row.HasBudget = budget.IsPositive()
	}

	if row.HasBudget {
		row.PctUsed = row.Spent.Div(*row.Budget).Mul(hundred)
	}

	return row
}

// compareRows is the strict multi-key row comparator:
//  1. rows with a budget before rows without one
//  2. among budgeted rows, over-budget before within-budget
//  3. within those, higher percentage used first
//  4. among unbudgeted rows, higher spent first
func compareRows(a, b ReportRow) int {
	if a.HasBudget != b.HasBudget {
		if a.HasBudget {
			return -1
		}
		return 1
	}

	if a.HasBudget {
		if a.overBudget() != b.overBudget() {
			if a.overBudget() {
				return -1
			}
			return 1
		}

		return b.PctUsed.Cmp(a.PctUsed)
	}

	return b.Spent.Cmp(a.Spent)
}
