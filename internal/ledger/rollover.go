package ledger

import (
	"fmt"

	"github.com/pocketledger/backend/internal/types"
	"golang.org/x/sync/singleflight"
)

// BudgetStore is the persistence surface the rollover engine needs.
type BudgetStore interface {
	// MonthHasBudgets reports whether any budget allocation exists for the month.
	MonthHasBudgets(month types.Month) (bool, error)

	// MostRecentMonthWithBudgetsBefore returns the latest month strictly
	// before the passed month that has budget allocations. The bool is
	// false when no such month exists.
	MostRecentMonthWithBudgetsBefore(month types.Month) (types.Month, bool, error)

	// CopyBudgets copies all allocations from one month to another with
	// insert-if-absent semantics.
	CopyBudgets(from, to types.Month) error
}

// Rollover carries budget allocations forward into months that have none
// yet.
//
// Concurrent calls for the same month are collapsed into a single
// execution, so the check-then-copy sequence runs as one logical operation
// per month.
type Rollover struct {
	store BudgetStore
	group singleflight.Group
}

// NewRollover returns a rollover engine backed by the passed store.
func NewRollover(store BudgetStore) *Rollover {
	return &Rollover{store: store}
}

// EnsureBudgetsForMonth makes sure the month has budget allocations
// available before it is reported on.
//
// If the month already has allocations, nothing happens. Otherwise the
// allocations of the most recent earlier month that has any are copied
// forward. A month with no earlier allocations anywhere simply stays
// empty; that is not an error.
//
// The operation is idempotent: a second call for the same month finds the
// copied rows and does nothing.
func (r *Rollover) EnsureBudgetsForMonth(month types.Month) error {
	_, err, _ := r.group.Do(month.String(), func() (interface{}, error) {
		return nil, r.ensure(month)
	})

	return err
}

func (r *Rollover) ensure(month types.Month) error {
	has, err := r.store.MonthHasBudgets(month)
	if err != nil {
		return fmt.Errorf("checking budgets for %s: %w", month, err)
	}

	if has {
		return nil
	}

	source, ok, err := r.store.MostRecentMonthWithBudgetsBefore(month)
	if err != nil {
		return fmt.Errorf("finding rollover source for %s: %w", month, err)
	}

	if !ok {
		return nil
	}

	err = r.store.CopyBudgets(source, month)
	if err != nil {
		return fmt.Errorf("copying budgets from %s to %s: %w", source, month, err)
	}

	return nil
}
