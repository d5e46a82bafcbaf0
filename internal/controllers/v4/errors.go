package v4

import (
	"errors"
	"net/http"

	"github.com/pocketledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the category name is already in use"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errMonthNotSetInQuery = errors.New("the month query parameter must be set")

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

// Reorder errors
var errReorderIDsEmpty = errors.New("the list of category group IDs must not be empty")
