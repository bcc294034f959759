package store

import "errors"

var (
	// ErrInvalidName is returned when the name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when no contact detail was provided
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrIncompleteBooking is returned when service, date or time is missing
	ErrIncompleteBooking = errors.New("service, preferred date and preferred time are required")

	// ErrInvalidStatus is returned for a status outside the known set
	ErrInvalidStatus = errors.New("unknown booking status")

	// ErrSlotMissing is returned by a Backend when a slot has never been written
	ErrSlotMissing = errors.New("slot missing")
)
