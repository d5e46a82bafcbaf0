// Package models implements the persisted resources of Pocketledger and the
// query contracts the computation core consumes.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultModel is the base model for all resources with their own ID.
// MonthlyBudget uses the category and month as primary key, so the
// timestamps are managed in the Timestamps struct.
type DefaultModel struct {
	ID uint64 `json:"id" gorm:"primaryKey" example:"17"` // Numeric ID of the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically to
// enable other primary keys than ID.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Timestamps) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}
