// Package ledger implements the budget aggregation core: signed amount
// resolution, per-category aggregation, the month report builders and the
// budget rollover engine.
//
// All computations in this package are pure transforms over data that has
// already been fetched. Besides the rollover engine, which talks to its
// store through the BudgetStore interface, nothing here performs I/O, and
// no function fails for well-typed input.
package ledger

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Signed converts a stored transaction magnitude and its income flag into
// a signed ledger contribution: positive for income, negative for spending.
//
// This is the single source of truth for direction. No other place derives
// the sign of an amount independently.
func Signed(amount decimal.Decimal, isIncome bool) decimal.Decimal {
	if isIncome {
		return amount
	}

	return amount.Neg()
}

// NetByCategory sums the signed contributions of the transactions per
// category.
//
// Categories without matching transactions are absent from the result and
// are treated as a net of zero by all consumers. Transactions whose
// category is missing from the lookup are skipped: a dangling category
// reference degrades the aggregation, it does not fail it.
func NetByCategory(transactions []models.Transaction, categories map[uint64]models.Category) map[uint64]decimal.Decimal {
	net := make(map[uint64]decimal.Decimal)

	for _, transaction := range transactions {
		if _, ok := categories[transaction.CategoryID]; !ok {
			continue
		}

		net[transaction.CategoryID] = net[transaction.CategoryID].
			Add(Signed(transaction.Amount, transaction.IsIncome))
	}

	return net
}

// spentFor converts a category's signed net sum into its displayed amount.
//
// For spending categories the sign is flipped so that money leaving the
// category reads as a positive "spent" value. A negative result means more
// money was returned into the category than left it; that is surfaced as
// profit, never as income.
func spentFor(category models.Category, net decimal.Decimal) decimal.Decimal {
	if category.Rule == models.CategoryRuleSpending {
		return net.Neg()
	}

	return net
}
