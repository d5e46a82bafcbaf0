package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryRule determines how a category's net transaction sum is read:
// as money earned (income) or as money spent (spending).
type CategoryRule string

const (
	CategoryRuleIncome   CategoryRule = "income"
	CategoryRuleSpending CategoryRule = "spending"
)

// Category is the classification every transaction belongs to.
//
// The rule of a category is set once on creation and never recomputed from
// its transactions.
type Category struct {
	DefaultModel
	Name    string         `json:"name" gorm:"uniqueIndex" example:"Groceries"`          // Name of the category, unique
	Rule    CategoryRule   `json:"rule" example:"spending"`                              // income or spending, immutable
	GroupID *uint64        `json:"groupId" example:"4"`                                  // ID of the category group. null means "Unassigned"
	Group   *CategoryGroup `json:"-"`                                                    // The group, read through for display name and color
	Note    string         `json:"note,omitempty" example:"Everything edible" default:""` // Notes about the category
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	return nil
}

// BeforeCreate validates the fields that are fixed on creation. The rule
// is never validated again because it can never change afterwards.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameEmpty
	}

	if c.Rule != CategoryRuleIncome && c.Rule != CategoryRuleSpending {
		return ErrCategoryRuleInvalid
	}

	if c.GroupID != nil {
		return tx.First(&CategoryGroup{}, *c.GroupID).Error
	}

	return nil
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Rule") {
		return ErrCategoryRuleImmutable
	}

	if tx.Statement.Changed("GroupID") {
		toSave, ok := tx.Statement.Dest.(Category)
		if ok && toSave.GroupID != nil {
			return tx.First(&CategoryGroup{}, *toSave.GroupID).Error
		}
	}

	return nil
}

// BeforeDelete guards the deletion and cascades it to the category's
// monthly budgets.
//
// A category can only be removed once no transaction references it anymore.
// Its budget rows carry no meaning without it and are removed together
// with it.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	count, err := TransactionCountForCategory(tx, c.ID)
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryStillReferenced
	}

	return tx.Where("category_id = ?", c.ID).Delete(&MonthlyBudget{}).Error
}

// Categories returns all categories with their group read through.
func Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Preload("Group").Order("name ASC").Find(&categories).Error
	return categories, err
}

// CategoriesByID returns the category lookup used by the aggregation core.
func CategoriesByID(db *gorm.DB) (map[uint64]Category, error) {
	categories, err := Categories(db)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	return byID, nil
}
