package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Category errors
var (
	ErrCategoryNameNotUnique   = errors.New("the category name is already in use")
	ErrCategoryNameEmpty       = errors.New("the category name must not be empty")
	ErrCategoryRuleInvalid     = errors.New("the category rule must be income or spending")
	ErrCategoryRuleImmutable   = errors.New("the rule of a category can not be changed")
	ErrCategoryStillReferenced = errors.New("the category still has transactions referencing it")
)

// CategoryGroup errors
var (
	ErrGroupNameNotUnique = errors.New("the category group name is already in use")
	ErrGroupColorInvalid  = errors.New("the category group color is not part of the palette")
)

// Transaction errors
var ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")

// MonthlyBudget errors
var (
	ErrBudgetAmountNotPositive = errors.New("budget amounts must be larger than zero")
	ErrBudgetMonthNotUnique    = errors.New("you can not create multiple budgets for the same category and month")
)
