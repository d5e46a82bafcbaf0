package v4

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterCategoryGroupRoutes registers the routes for category groups with
// the RouterGroup that is passed.
func RegisterCategoryGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryGroupList)
		r.GET("", GetCategoryGroups)
		r.POST("", CreateCategoryGroups)
	}

	// Reorder
	{
		r.OPTIONS("/reorder", OptionsCategoryGroupReorder)
		r.POST("/reorder", ReorderCategoryGroups)
	}

	// Category group with ID
	{
		r.OPTIONS("/:id", OptionsCategoryGroupDetail)
		r.GET("/:id", GetCategoryGroup)
		r.PATCH("/:id", UpdateCategoryGroup)
		r.DELETE("/:id", DeleteCategoryGroup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryGroups
// @Success		204
// @Router			/v4/category-groups [options]
func OptionsCategoryGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryGroups
// @Success		204
// @Router			/v4/category-groups/reorder [options]
func OptionsCategoryGroupReorder(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/category-groups/{id} [options]
func OptionsCategoryGroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.CategoryGroup{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category groups
// @Description	Creates new category groups. New groups sort after all existing ones.
// @Tags			CategoryGroups
// @Produce		json
// @Success		201		{object}	CategoryGroupCreateResponse
// @Failure		400		{object}	CategoryGroupCreateResponse
// @Failure		500		{object}	CategoryGroupCreateResponse
// @Param			groups	body		[]CategoryGroupEditable	true	"Category groups"
// @Router			/v4/category-groups [post]
func CreateCategoryGroups(c *gin.Context) {
	var editables []CategoryGroupEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryGroupCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := CategoryGroupCreateResponse{}

	for _, editable := range editables {
		group := editable.model()

		// Sort after all existing groups
		var count int64
		err = models.DB.Model(&models.CategoryGroup{}).Count(&count).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		group.SortOrder = int(count)

		err = models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCategoryGroup(c, group)
		r.Data = append(r.Data, CategoryGroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get category groups
// @Description	Returns all category groups in their display order
// @Tags			CategoryGroups
// @Produce		json
// @Success		200	{object}	CategoryGroupListResponse
// @Failure		500	{object}	CategoryGroupListResponse
// @Router			/v4/category-groups [get]
func GetCategoryGroups(c *gin.Context) {
	groups, err := models.CategoryGroups(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupListResponse{
			Error: &s,
		})
		return
	}

	data := make([]CategoryGroup, 0, len(groups))
	for _, group := range groups {
		data = append(data, newCategoryGroup(c, group))
	}

	c.JSON(http.StatusOK, CategoryGroupListResponse{Data: data})
}

// @Summary		Get category group
// @Description	Returns a specific category group
// @Tags			CategoryGroups
// @Produce		json
// @Success		200	{object}	CategoryGroupResponse
// @Failure		400	{object}	CategoryGroupResponse
// @Failure		404	{object}	CategoryGroupResponse
// @Failure		500	{object}	CategoryGroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/category-groups/{id} [get]
func GetCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	data := newCategoryGroup(c, group)
	c.JSON(http.StatusOK, CategoryGroupResponse{Data: &data})
}

// @Summary		Update category group
// @Description	Update an existing category group. Only values to be updated need to be specified.
// @Tags			CategoryGroups
// @Accept			json
// @Produce		json
// @Success		200		{object}	CategoryGroupResponse
// @Failure		400		{object}	CategoryGroupResponse
// @Failure		404		{object}	CategoryGroupResponse
// @Failure		500		{object}	CategoryGroupResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			group	body		CategoryGroupEditable	true	"Category group"
// @Router			/v4/category-groups/{id} [patch]
func UpdateCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryGroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	var data CategoryGroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&group).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	r := newCategoryGroup(c, group)
	c.JSON(http.StatusOK, CategoryGroupResponse{Data: &r})
}

// @Summary		Delete category group
// @Description	Deletes a category group. Its categories are moved back to "Unassigned".
// @Tags			CategoryGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/category-groups/{id} [delete]
func DeleteCategoryGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.CategoryGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Reorder category groups
// @Description	Sets the display order of all category groups to the order of the passed IDs
// @Tags			CategoryGroups
// @Produce		json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			order	body		CategoryGroupReorder	true	"Ordered group IDs"
// @Router			/v4/category-groups/reorder [post]
func ReorderCategoryGroups(c *gin.Context) {
	var reorder CategoryGroupReorder

	err := httputil.BindData(c, &reorder)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if len(reorder.IDs) == 0 {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errReorderIDsEmpty.Error(),
		})
		return
	}

	err = models.ReorderCategoryGroups(models.DB, reorder.IDs)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
