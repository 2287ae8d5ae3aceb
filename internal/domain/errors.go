package domain

import "errors"

// ErrNotFound is returned when an operation needs an existing resource that is
// not present, e.g. adding an itinerary item to a trip that does not exist.
// Update and delete on unknown ids do not return it; they are silent no-ops.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing title, end date not after start date, rating out of range).
// The mutation is rejected before any state change or persistence attempt.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
