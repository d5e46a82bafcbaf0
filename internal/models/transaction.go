package models

import (
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single ledger entry.
//
// The amount is always a positive magnitude. The direction of the money
// flow is carried exclusively by IsIncome, never by the sign of the amount.
//
// The category is referenced by ID only. A transaction whose category has
// vanished (e.g. through an import with foreign IDs) stays in the database
// and is skipped during aggregation.
type Transaction struct {
	DefaultModel
	Date        types.Date      `json:"date" example:"2024-05-12"`                                                                             // Day the transaction occurred
	Description string          `json:"description" example:"Weekly market run"`                                                               // What the transaction was for
	Account     string          `json:"account" example:"Checking" default:""`                                                                 // Free-text account label
	IsIncome    bool            `json:"isIncome" example:"false" default:"false"`                                                              // Whether money came in or went out
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03" minimum:"0.00000001" multipleOf:"0.00000001"`         // Positive magnitude of the transaction
	CategoryID  uint64          `json:"categoryId" example:"8"`                                                                                // ID of the category
	Note        string          `json:"note,omitempty" example:"Includes the birthday cake" default:""`                                        // A note
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Account = strings.TrimSpace(t.Account)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = types.DateOf(time.Now().In(time.UTC))
	}

	return nil
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

// TransactionsForMonth returns all transactions of the month.
//
// The date column holds calendar days, so the month is selected with a
// half-open range: the first of the month inclusive up to the first of the
// following month exclusive.
func TransactionsForMonth(db *gorm.DB, month types.Month) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("date >= ? AND date < ?", month, month.AddDate(0, 1)).
		Order("date DESC, id DESC").
		Find(&transactions).
		Error

	return transactions, err
}

// TransactionCountForCategory returns the number of transactions that
// reference the category. It backs the deletion guard for categories.
func TransactionCountForCategory(db *gorm.DB, categoryID uint64) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&count).
		Error

	return count, err
}
