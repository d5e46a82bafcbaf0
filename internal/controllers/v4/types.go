package v4

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/types"
)

type URIID struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-05"` // Year and month in YYYY-MM format
}

// bindMonth binds and validates the month query parameter.
func bindMonth(c *gin.Context) (types.Month, error) {
	var query QueryMonth

	err := c.ShouldBind(&query)
	if err != nil {
		return types.Month{}, err
	}

	if query.Month.IsZero() {
		return types.Month{}, errMonthNotSetInQuery
	}

	return types.MonthOf(query.Month), nil
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
