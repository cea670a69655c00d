// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"
	// CodeInvalidArgument represents a malformed request parameter.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Grid errors
	CodeGramInvalidSize      Code = "GRAM_INVALID_SIZE"
	CodeGramShapeMismatch    Code = "GRAM_SHAPE_MISMATCH"
	CodeGramInvalidCharacter Code = "GRAM_INVALID_CHARACTER"
	CodeGramInvalidEncoding  Code = "GRAM_INVALID_ENCODING"
	CodeGramCellOutOfRange   Code = "GRAM_CELL_OUT_OF_RANGE"
	CodeGramRunTooLong       Code = "GRAM_RUN_TOO_LONG"

	// Catalog errors
	CodeGramPuzzleNotFound Code = "GRAM_PUZZLE_NOT_FOUND"
	CodeGramInvalidFilter  Code = "GRAM_INVALID_FILTER"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidArgument,
		CodeGramInvalidSize,
		CodeGramShapeMismatch,
		CodeGramInvalidCharacter,
		CodeGramInvalidEncoding,
		CodeGramCellOutOfRange,
		CodeGramInvalidFilter:
		return codes.InvalidArgument

	// FailedPrecondition - well-formed grid the compact format cannot carry
	case CodeGramRunTooLong:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeGramPuzzleNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
