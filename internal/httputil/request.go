// Package httputil provides helpers for request parsing and shared HTTP
// responses.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"reflect"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetURLFields returns the names of all model fields that the query string
// filters on and the names of all fields set in the query string.
//
// The "filterField" struct tag marks fields that are processed by explicit
// logic instead of being passed to the database query directly.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}

	return queryFields, setFields
}

// GetBodyFields returns the names of all model fields that are set in the
// request body. This is used to determine which fields a PATCH updates.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	// Copy the body to be able to use it multiple times
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	// Parse the body into a map to have all fields available
	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []any{}, ErrInvalidBody
	}

	var bodyFields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("json")

		if _, ok := mapBody[param]; ok {
			bodyFields = append(bodyFields, field)
		}
	}

	return bodyFields, nil
}
