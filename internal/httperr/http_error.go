package httperr

import (
	"errors"
	"net/http"

	"parkspot/internal/db"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromDomain maps a business-rule error to the HTTP status the API returns
// for it: 404 for missing entities, 409 for uniqueness conflicts, 422 for
// the remaining rule violations. Unknown errors become a generic 500 so no
// internal detail leaks to the caller.
func FromDomain(err error) *HTTPError {
	switch {
	case errors.Is(err, db.ErrSpotNotFound),
		errors.Is(err, db.ErrReservationNotFound),
		errors.Is(err, db.ErrVehicleNotFound),
		errors.Is(err, db.ErrCustomerNotFound),
		errors.Is(err, db.ErrPaymentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrDuplicateActiveReservation),
		errors.Is(err, db.ErrDuplicatePayment),
		errors.Is(err, db.ErrDuplicatePlate),
		errors.Is(err, db.ErrDuplicateSpot),
		errors.Is(err, db.ErrDuplicateCustomer):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrSpotNotAvailable),
		errors.Is(err, db.ErrSpotInUse),
		errors.Is(err, db.ErrCompleteNotActive),
		errors.Is(err, db.ErrCancelNotActive),
		errors.Is(err, db.ErrInvalidDuration),
		errors.Is(err, db.ErrPaymentNotCompleted),
		errors.Is(err, db.ErrRefundNotPaid):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
