package models_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryGroupNameNotUnique() {
	_ = suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fixed costs"})

	err := models.DB.Create(&models.CategoryGroup{Name: "Fixed costs"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryGroupColorInvalid() {
	err := models.DB.Create(&models.CategoryGroup{Name: "Fun", Color: "#bada55"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupColorInvalid)
}

func (suite *TestSuiteStandard) TestCategoryGroupDisplayColor() {
	stored := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fun", Color: "#0ea5e9"})
	assert.Equal(suite.T(), "#0ea5e9", stored.DisplayColor())

	derived := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Household"})
	assert.Equal(suite.T(), models.ColorForName("Household"), derived.DisplayColor())

	// The derived color is stable across calls.
	assert.Equal(suite.T(), derived.DisplayColor(), derived.DisplayColor())
	assert.Contains(suite.T(), models.Palette, derived.DisplayColor())
}

func (suite *TestSuiteStandard) TestCategoryGroupDeleteReassignsCategories() {
	t := suite.T()

	group := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fixed costs"})
	category := suite.createTestCategory(models.Category{Name: "Rent", GroupID: &group.ID})

	err := models.DB.Delete(&group).Error
	require.Nil(t, err)

	err = models.DB.First(&category, category.ID).Error
	require.Nil(t, err, "categories must survive the deletion of their group")
	assert.Nil(t, category.GroupID)
}

func (suite *TestSuiteStandard) TestReorderCategoryGroups() {
	t := suite.T()

	first := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fixed costs", SortOrder: 0})
	second := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fun", SortOrder: 1})
	third := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Savings", SortOrder: 2})

	err := models.ReorderCategoryGroups(models.DB, []uint64{third.ID, first.ID, second.ID})
	require.Nil(t, err)

	groups, err := models.CategoryGroups(models.DB)
	require.Nil(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Savings", groups[0].Name)
	assert.Equal(t, "Fixed costs", groups[1].Name)
	assert.Equal(t, "Fun", groups[2].Name)
}

func (suite *TestSuiteStandard) TestReorderCategoryGroupsUnknownID() {
	group := suite.createTestCategoryGroup(models.CategoryGroup{Name: "Fixed costs", SortOrder: 3})

	err := models.ReorderCategoryGroups(models.DB, []uint64{group.ID, 4084})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// The failed reorder must not have moved anything.
	var reloaded models.CategoryGroup
	require.Nil(suite.T(), models.DB.First(&reloaded, group.ID).Error)
	assert.Equal(suite.T(), 3, reloaded.SortOrder)
}
