package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchersSeeThroughWrapping(t *testing.T) {
	base := errors.New("dial tcp: connection refused")

	wrapped := fmt.Errorf("cancel booking: %w", NotFoundError{Resource: "booking"})
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))

	pe := fmt.Errorf("list: %w", PersistenceError{Op: "select bookings", Err: base})
	assert.True(t, IsPersistence(pe))
	assert.ErrorIs(t, pe, base)
	assert.Contains(t, pe.Error(), "connection refused")

	assert.True(t, IsConflict(ConflictError{Msg: "taken"}))
	assert.True(t, IsValidation(ValidationError{Field: "status"}))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "booking not found", NotFoundError{Resource: "booking"}.Error())
	assert.Equal(t, "status: must be confirmed or cancelled",
		ValidationError{Field: "status", Msg: "must be confirmed or cancelled"}.Error())
	assert.Equal(t, "invalid check_in", ValidationError{Field: "check_in"}.Error())
	assert.Equal(t, "Room is not available for these dates",
		ConflictError{Msg: "Room is not available for these dates"}.Error())
	assert.Equal(t, "persistence error", PersistenceError{}.Error())
}

func TestStatusAndRoleValidity(t *testing.T) {
	assert.True(t, BookingConfirmed.Valid())
	assert.True(t, BookingCancelled.Valid())
	assert.False(t, BookingStatus("pending").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}
