package apperrors

import (
	"errors"
	"net/http"
)

// Definition is a client-facing error code with its default message and HTTP status.
type Definition struct {
	Code    string
	Message string
	Status  int
}

func (d *Definition) Error() string {
	return d.Message
}

// Auth
var (
	NotAuthenticated = &Definition{Code: "NOT_AUTHENTICATED", Message: "Not authenticated", Status: http.StatusUnauthorized}
)

// Referential integrity
var (
	UserNotFound  = &Definition{Code: "USER_NOT_FOUND", Message: "User not found", Status: http.StatusNotFound}
	HabitNotFound = &Definition{Code: "HABIT_NOT_FOUND", Message: "Habit not found", Status: http.StatusNotFound}
	UserExists    = &Definition{Code: "USER_EXISTS", Message: "User already exists", Status: http.StatusConflict}
)

// Validation
var (
	InvalidDate    = &Definition{Code: "INVALID_DATE", Message: "Date must be formatted as YYYY-MM-DD", Status: http.StatusBadRequest}
	InvalidRequest = &Definition{Code: "INVALID_REQUEST", Message: "Invalid request body", Status: http.StatusBadRequest}
)

// Streak freeze
var (
	NoFreezeAvailable = &Definition{Code: "NO_FREEZE_AVAILABLE", Message: "No streak freezes available", Status: http.StatusBadRequest}
	AlreadyApplied    = &Definition{Code: "FREEZE_ALREADY_APPLIED", Message: "Freeze already applied for this date", Status: http.StatusBadRequest}
)

// Storage
var (
	Persistence = &Definition{Code: "PERSISTENCE_ERROR", Message: "Server error", Status: http.StatusInternalServerError}
)

var Lookup = map[string]*Definition{
	NotAuthenticated.Code:  NotAuthenticated,
	UserNotFound.Code:      UserNotFound,
	HabitNotFound.Code:     HabitNotFound,
	UserExists.Code:        UserExists,
	InvalidDate.Code:       InvalidDate,
	InvalidRequest.Code:    InvalidRequest,
	NoFreezeAvailable.Code: NoFreezeAvailable,
	AlreadyApplied.Code:    AlreadyApplied,
	Persistence.Code:       Persistence,
}

// From extracts the Definition wrapped in err. Unknown errors map to Persistence,
// the generic server error.
func From(err error) *Definition {
	var def *Definition
	if errors.As(err, &def) {
		return def
	}
	return Persistence
}
