package models

import (
	"errors"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyBudget is the budget allocation for one category in one month.
//
// The absence of a row means "no budget set" for that category and month,
// which is different from a budget of zero.
type MonthlyBudget struct {
	Timestamps
	CategoryID uint64          `json:"categoryId" gorm:"primaryKey" example:"8"`                  // ID of the category
	Category   Category        `json:"-"`                                                         // The category the budget belongs to
	Month      types.Month     `json:"month" gorm:"primaryKey" example:"2024-05"`                 // Month the allocation is for
	Amount     decimal.Decimal `json:"budgetAmount" gorm:"type:DECIMAL(20,8)" example:"250"`      // Allocated amount, always positive
}

func (b *MonthlyBudget) BeforeCreate(tx *gorm.DB) error {
	return b.checkIntegrity(tx)
}

func (b *MonthlyBudget) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&Category{}, b.CategoryID).Error
}

func (b *MonthlyBudget) AfterSave(_ *gorm.DB) error {
	if !b.Amount.IsPositive() {
		return ErrBudgetAmountNotPositive
	}

	return nil
}

// BudgetsForMonth returns all budget allocations of the month.
func BudgetsForMonth(db *gorm.DB, month types.Month) ([]MonthlyBudget, error) {
	var budgets []MonthlyBudget
	err := db.Where("month = ?", month).Find(&budgets).Error
	return budgets, err
}

// BudgetsByCategory returns the month's allocations as the lookup the
// report builder consumes.
func BudgetsByCategory(db *gorm.DB, month types.Month) (map[uint64]decimal.Decimal, error) {
	budgets, err := BudgetsForMonth(db, month)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint64]decimal.Decimal, len(budgets))
	for _, budget := range budgets {
		byCategory[budget.CategoryID] = budget.Amount
	}

	return byCategory, nil
}

// MonthHasBudgets reports whether any budget allocation exists for the month.
func MonthHasBudgets(db *gorm.DB, month types.Month) (bool, error) {
	var count int64

	err := db.Model(&MonthlyBudget{}).
		Where("month = ?", month).
		Count(&count).
		Error

	return count > 0, err
}

// MostRecentMonthWithBudgetsBefore returns the latest month strictly before
// the passed month that has at least one budget allocation.
//
// The upper bound is exclusive: the passed month itself and anything after
// it are never considered. The second return value is false when no prior
// month has budgets.
func MostRecentMonthWithBudgetsBefore(db *gorm.DB, month types.Month) (types.Month, bool, error) {
	var budget MonthlyBudget

	err := db.Model(&MonthlyBudget{}).
		Where("month < ?", month).
		Order("month DESC").
		Limit(1).
		Take(&budget).
		Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return types.Month{}, false, nil
		}
		return types.Month{}, false, err
	}

	return budget.Month, true, nil
}

// CopyBudgets copies every budget allocation of the source month to the
// target month. Allocations that already exist for the target month are
// left untouched.
func CopyBudgets(db *gorm.DB, from, to types.Month) error {
	budgets, err := BudgetsForMonth(db, from)
	if err != nil {
		return err
	}

	if len(budgets) == 0 {
		return nil
	}

	copies := make([]MonthlyBudget, 0, len(budgets))
	for _, budget := range budgets {
		copies = append(copies, MonthlyBudget{
			CategoryID: budget.CategoryID,
			Month:      to,
			Amount:     budget.Amount,
		})
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&copies).Error
}

// SetBudget sets the budget allocation for a category and month.
// A nil or non-positive amount deletes the allocation.
func SetBudget(db *gorm.DB, categoryID uint64, month types.Month, amount *decimal.Decimal) error {
	if amount == nil || !amount.IsPositive() {
		return db.
			Where("category_id = ? AND month = ?", categoryID, month).
			Delete(&MonthlyBudget{}).
			Error
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&MonthlyBudget{
		CategoryID: categoryID,
		Month:      month,
		Amount:     *amount,
	}).Error
}
