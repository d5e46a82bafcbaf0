package ledger

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Names and accent of the two special sections.
const (
	IncomeSectionName     = "Income"
	UnassignedSectionName = "Unassigned"

	incomeAccent = "#22c55e"
)

// GroupSection is one bucket of the grouped month report: the fixed Income
// section, one section per category group, or the trailing Unassigned
// section for ungrouped spending categories.
type GroupSection struct {
	GroupID *uint64 `json:"groupId" example:"4"`           // ID of the group, null for Income and Unassigned
	Name    string  `json:"name" example:"Fixed costs"`    // Display name of the section
	Color   string  `json:"color" example:"#0ea5e9"`       // Accent color of the section
	Income  bool    `json:"income" example:"false"`        // Whether this is the Income section

	// Budgeted and Spent only sum the positive values of their rows. A
	// profit row does not reduce its section's spent total, in contrast to
	// the flat report total where profit offsets spending.
	Budgeted decimal.Decimal `json:"budgeted" example:"950"`
	Spent    decimal.Decimal `json:"spent" example:"133.70"`

	Rows []ReportRow `json:"rows"` // The section's category rows
}

// BuildGroupedReport buckets the categories into display sections.
//
// The Income section always sorts first and only appears when an income
// category has activity or a budget. Group sections follow in their stored
// sort order and only appear when a member category has activity or a
// budget. Ungrouped spending categories form the trailing Unassigned
// section. Rows with neither activity nor budget stay invisible, so they
// never cause an empty section.
func BuildGroupedReport(categories []models.Category, groups []models.CategoryGroup, net map[uint64]decimal.Decimal, budgets map[uint64]decimal.Decimal) []GroupSection {
	income := GroupSection{Name: IncomeSectionName, Color: incomeAccent, Income: true, Rows: []ReportRow{}}
	unassigned := GroupSection{Name: UnassignedSectionName, Color: models.ColorForName(UnassignedSectionName), Rows: []ReportRow{}}

	sections := make(map[uint64]*GroupSection, len(groups))
	order := make([]uint64, 0, len(groups))
	for _, group := range groups {
		id := group.ID
		sections[id] = &GroupSection{
			GroupID: &id,
			Name:    group.Name,
			Color:   group.DisplayColor(),
			Rows:    []ReportRow{},
		}
		order = append(order, id)
	}

	for _, category := range categories {
		row := buildRow(category, net[category.ID], budgets)
		if row.Spent.IsZero() && !row.HasBudget {
			continue
		}

		switch {
		case category.Rule == models.CategoryRuleIncome:
			income.append(row)
		case category.GroupID != nil && sections[*category.GroupID] != nil:
			sections[*category.GroupID].append(row)
		default:
			unassigned.append(row)
		}
	}

	result := make([]GroupSection, 0, len(groups)+2)
	if len(income.Rows) > 0 {
		result = append(result, income)
	}

	for _, id := range order {
		if len(sections[id].Rows) > 0 {
			result = append(result, *sections[id])
		}
	}

	if len(unassigned.Rows) > 0 {
		result = append(result, unassigned)
	}

	for i := range result {
		slices.SortStableFunc(result[i].Rows, compareRows)
	}

	return result
}

// append adds a row to the section and folds it into the section totals.
// Only positive values count towards the totals.
func (s *GroupSection) append(row ReportRow) {
	s.Rows = append(s.Rows, row)

	if row.HasBudget {
		s.Budgeted = s.Budgeted.Add(*row.Budget)
	}

	if row.Spent.IsPositive() {
		s.Spent = s.Spent.Add(row.Spent)
	}
}
