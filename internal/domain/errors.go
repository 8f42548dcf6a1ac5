package domain

import "errors"

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrSlotConflict      = errors.New("slot overlaps an existing hold or booking")
	ErrSlotUnavailable   = errors.New("slot is no longer available")
	ErrHoldExpired       = errors.New("slot hold has expired")
	ErrStatusConflict    = errors.New("status changed concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var (
	ErrInvalidInterval       = errors.New("invalid time interval")
	ErrOutsideOperatingHours = errors.New("outside operating hours")
	ErrValidation            = errors.New("validation error")
	ErrInvalidSignature      = errors.New("invalid payment signature")
)
