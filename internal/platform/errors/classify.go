package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
)

// Classify maps an error from the grid core or the puzzle catalog to a domain
// error. Errors that are already domain errors are returned as-is; anything
// unrecognized becomes CodeUnknown. Classify returns nil for a nil error.
//
// Row metadata is 1-indexed so it reads naturally next to line and column.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr
	}

	var (
		dimErr    *gram.DimensionError
		shapeErr  *gram.ShapeError
		parseErr  *gram.ParseError
		formatErr *gram.FormatError
		rangeErr  *gram.RangeError
		runErr    *gram.EncodingRangeError
		filterErr *catalog.FilterError
	)
	switch {
	case stderrors.As(err, &dimErr):
		return newError(CodeGramInvalidSize, err, map[string]string{
			"size": strconv.Itoa(dimErr.Size),
		})
	case stderrors.As(err, &shapeErr):
		return newError(CodeGramShapeMismatch, err, map[string]string{
			"row":      strconv.Itoa(shapeErr.Row + 1),
			"length":   strconv.Itoa(shapeErr.Length),
			"expected": strconv.Itoa(shapeErr.Expected),
		})
	case stderrors.As(err, &parseErr):
		return newError(CodeGramInvalidCharacter, err, map[string]string{
			"char":   charString(parseErr.Char),
			"line":   strconv.Itoa(parseErr.Line),
			"column": strconv.Itoa(parseErr.Column),
		})
	case stderrors.As(err, &formatErr):
		return newError(CodeGramInvalidEncoding, err, map[string]string{
			"reason": string(formatErr.Kind),
			"char":   charString(formatErr.Char),
			"offset": strconv.Itoa(formatErr.Offset),
		})
	case stderrors.As(err, &rangeErr):
		return newError(CodeGramCellOutOfRange, err, map[string]string{
			"x":    strconv.Itoa(rangeErr.X),
			"y":    strconv.Itoa(rangeErr.Y),
			"size": strconv.Itoa(rangeErr.Size),
		})
	case stderrors.As(err, &runErr):
		return newError(CodeGramRunTooLong, err, map[string]string{
			"row":    strconv.Itoa(runErr.Row + 1),
			"length": strconv.Itoa(runErr.Length),
			"max":    strconv.Itoa(gram.MaxRunLength),
		})
	case stderrors.As(err, &filterErr):
		return newError(CodeGramInvalidFilter, err, map[string]string{
			"filter": filterErr.Filter,
			"reason": filterErr.Err.Error(),
		})
	default:
		return newError(CodeUnknown, err, nil)
	}
}

// InvalidArgument reports a malformed request parameter.
func InvalidArgument(param string, cause error) *Error {
	return newError(CodeInvalidArgument, cause, map[string]string{
		"param":  param,
		"reason": cause.Error(),
	})
}

// PuzzleNotFound reports a catalog lookup miss.
func PuzzleNotFound(name string) *Error {
	return newError(CodeGramPuzzleNotFound, fmt.Errorf("puzzle not found: %s", name), map[string]string{
		"name": name,
	})
}

func charString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}
