package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryGroup is a named collection of categories, used to section the
// budget view. Its SortOrder defines the display order among groups and is
// only changed through ReorderCategoryGroups.
type CategoryGroup struct {
	DefaultModel
	Name      string `json:"name" gorm:"uniqueIndex" example:"Fixed costs"` // Name of the group
	SortOrder int    `json:"sortOrder" example:"2"`                         // Position of the group in the budget view
	Color     string `json:"color" example:"#0ea5e9" default:""`            // Palette color. Empty means the color is derived from the name
}

// Palette is the fixed set of colors a category group can be assigned.
var Palette = []string{
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#14b8a6",
	"#0ea5e9",
	"#8b5cf6",
	"#ec4899",
}

func (g *CategoryGroup) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if g.Color != "" && !paletteContains(g.Color) {
		return ErrGroupColorInvalid
	}

	return nil
}

// BeforeDelete moves all categories of the group back to "Unassigned".
// Categories are never deleted together with their group.
func (g *CategoryGroup) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&Category{}).
		Where("group_id = ?", g.ID).
		Update("group_id", nil).
		Error
}

// DisplayColor returns the stored palette color or, if none is set, a color
// deterministically derived from the group name.
func (g CategoryGroup) DisplayColor() string {
	if g.Color != "" {
		return g.Color
	}

	return ColorForName(g.Name)
}

// ColorForName picks a palette color for a name.
//
// The hash is a polynomial rolling hash with base 31, truncated to unsigned
// 32 bit, so the same name resolves to the same color everywhere.
func ColorForName(name string) string {
	var hash uint32
	for _, r := range name {
		hash = hash*31 + uint32(r)
	}

	return Palette[hash%uint32(len(Palette))]
}

func paletteContains(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}

	return false
}

// CategoryGroups returns all groups ordered by their sort order.
func CategoryGroups(db *gorm.DB) ([]CategoryGroup, error) {
	var groups []CategoryGroup
	err := db.Order("sort_order ASC, name ASC").Find(&groups).Error
	return groups, err
}

// ReorderCategoryGroups rewrites the sort order of all groups to match the
// order of the passed IDs. The write is transactional so a failed reorder
// never leaves a partial order behind.
func ReorderCategoryGroups(db *gorm.DB, ids []uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			var group CategoryGroup
			err := tx.First(&group, id).Error
			if err != nil {
				return err
			}

			err = tx.Model(&group).Update("sort_order", position).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
