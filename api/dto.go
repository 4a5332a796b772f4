/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Delta configuration validation lives in the factory and engine, not
  here. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/delta.go: DeltaJSON, the embedded delta shape
*/
package api

import (
	"github.com/warp/delta-engine/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// DeltaDTO represents a stored named delta in API responses.
type DeltaDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Config    factory.DeltaJSON `json:"config"`
	CreatedAt string            `json:"created_at,omitempty"`
}

// CreateDeltaRequest registers a named delta.
type CreateDeltaRequest struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Config factory.DeltaJSON `json:"config"`
}

// ApplyRequest applies a stored delta to a date.
type ApplyRequest struct {
	Date string `json:"date"`
}

// ApplyInlineRequest applies an inline delta to a date.
type ApplyInlineRequest struct {
	Delta factory.DeltaJSON `json:"delta"`
	Date  string            `json:"date"`
}

// ApplyResponse carries the resulting instant.
type ApplyResponse struct {
	Result string `json:"result"`
}

// DiffRequest computes the delta between two instants.
type DiffRequest struct {
	Date1         string `json:"date1"`
	Date2         string `json:"date2"`
	CountLeapDays bool   `json:"count_leap_days,omitempty"`
}

// DiffResponse carries the computed delta fields.
type DiffResponse struct {
	Delta factory.DeltaJSON `json:"delta"`
}

// ConvertRequest expresses a stored delta in a fixed unit.
type ConvertRequest struct {
	Unit      string `json:"unit"`                // seconds, milliseconds, minutes, hours, days, weeks, months, years
	Reference string `json:"reference,omitempty"` // defaults to now
}

// ConvertInlineRequest converts an inline delta.
type ConvertInlineRequest struct {
	Delta     factory.DeltaJSON `json:"delta"`
	Unit      string            `json:"unit"`
	Reference string            `json:"reference,omitempty"`
}

// ConvertResponse carries the scalar result.
type ConvertResponse struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
