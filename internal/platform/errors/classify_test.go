package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
	errori18n "github.com/louisbranch/gram/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		metadata map[string]string
	}{
		{
			name:     "dimension",
			err:      &gram.DimensionError{Size: -1},
			code:     CodeGramInvalidSize,
			metadata: map[string]string{"size": "-1"},
		},
		{
			name:     "shape",
			err:      &gram.ShapeError{Row: 1, Length: 1, Expected: 3},
			code:     CodeGramShapeMismatch,
			metadata: map[string]string{"row": "2", "length": "1", "expected": "3"},
		},
		{
			name:     "parse",
			err:      &gram.ParseError{Char: '#', Line: 1, Column: 2},
			code:     CodeGramInvalidCharacter,
			metadata: map[string]string{"char": "#", "line": "1", "column": "2"},
		},
		{
			name:     "format",
			err:      &gram.FormatError{Kind: gram.FormatInvalidTag, Char: 'g', Offset: 4},
			code:     CodeGramInvalidEncoding,
			metadata: map[string]string{"reason": "invalid_tag", "char": "g", "offset": "4"},
		},
		{
			name:     "empty document",
			err:      &gram.FormatError{Kind: gram.FormatMissingPrefix},
			code:     CodeGramInvalidEncoding,
			metadata: map[string]string{"reason": "missing_prefix", "char": "", "offset": "0"},
		},
		{
			name:     "range",
			err:      &gram.RangeError{X: 5, Y: 0, Size: 3},
			code:     CodeGramCellOutOfRange,
			metadata: map[string]string{"x": "5", "y": "0", "size": "3"},
		},
		{
			name:     "run too long",
			err:      &gram.EncodingRangeError{Row: 0, Block: 0, Length: 10},
			code:     CodeGramRunTooLong,
			metadata: map[string]string{"row": "1", "length": "10", "max": "9"},
		},
		{
			name:     "filter",
			err:      &catalog.FilterError{Filter: "color = 3", Err: stderrors.New("unknown field: color")},
			code:     CodeGramInvalidFilter,
			metadata: map[string]string{"filter": "color = 3", "reason": "unknown field: color"},
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("load: %w", &gram.DimensionError{Size: -2}),
			code: CodeGramInvalidSize,
			metadata: map[string]string{
				"size": "-2",
			},
		},
		{
			name: "unknown",
			err:  stderrors.New("boom"),
			code: CodeUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify() = nil")
			}
			if got.Code != tt.code {
				t.Fatalf("Code = %s, want %s", got.Code, tt.code)
			}
			if diff := cmp.Diff(tt.metadata, got.Metadata); diff != "" {
				t.Fatalf("Metadata mismatch (-want +got):\n%s", diff)
			}
			if !stderrors.Is(got, tt.err) {
				t.Fatalf("Classify() does not wrap %v", tt.err)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Fatalf("Classify(nil) = %v, want nil", got)
	}
}

func TestClassifyKeepsDomainErrors(t *testing.T) {
	want := PuzzleNotFound("kite")
	got := Classify(fmt.Errorf("lookup: %w", want))
	if got != want {
		t.Fatalf("Classify() = %#v, want original domain error", got)
	}
}

func TestClassifyDecodeErrors(t *testing.T) {
	_, err := gram.Decode("grb2g1")
	got := Classify(err)
	if got.Code != CodeGramInvalidEncoding {
		t.Fatalf("Code = %s, want %s", got.Code, CodeGramInvalidEncoding)
	}
	if got.Metadata["offset"] != "4" || got.Metadata["char"] != "g" {
		t.Fatalf("Metadata = %v", got.Metadata)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code   Code
		grpc   codes.Code
		status int
	}{
		{code: CodeInvalidArgument, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramInvalidSize, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramShapeMismatch, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramInvalidCharacter, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramInvalidEncoding, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramCellOutOfRange, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramInvalidFilter, grpc: codes.InvalidArgument, status: http.StatusBadRequest},
		{code: CodeGramRunTooLong, grpc: codes.FailedPrecondition, status: http.StatusUnprocessableEntity},
		{code: CodeGramPuzzleNotFound, grpc: codes.NotFound, status: http.StatusNotFound},
		{code: CodeUnknown, grpc: codes.Internal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.grpc {
				t.Fatalf("GRPCCode() = %s, want %s", got, tt.grpc)
			}
			if got := tt.code.HTTPStatus(); got != tt.status {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestInvalidArgument(t *testing.T) {
	cause := stderrors.New("size must be a number")
	err := InvalidArgument("size", cause)
	if err.Code != CodeInvalidArgument {
		t.Fatalf("Code = %s", err.Code)
	}
	want := map[string]string{"param": "size", "reason": "size must be a number"}
	if diff := cmp.Diff(want, err.Metadata); diff != "" {
		t.Fatalf("Metadata mismatch (-want +got):\n%s", diff)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause to be wrapped")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	if !stderrors.Is(PuzzleNotFound("a"), &Error{Code: CodeGramPuzzleNotFound}) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(PuzzleNotFound("a"), &Error{Code: CodeGramInvalidFilter}) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestErrorText(t *testing.T) {
	if got := PuzzleNotFound("kite").Error(); got != "puzzle not found: kite" {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&Error{Code: CodeUnknown}).Error(); got != "UNKNOWN" {
		t.Fatalf("Error() without cause = %q, want the code", got)
	}
}

func TestEveryCodeIsTranslated(t *testing.T) {
	all := []Code{
		CodeUnknown,
		CodeInvalidArgument,
		CodeGramInvalidSize,
		CodeGramShapeMismatch,
		CodeGramInvalidCharacter,
		CodeGramInvalidEncoding,
		CodeGramCellOutOfRange,
		CodeGramRunTooLong,
		CodeGramPuzzleNotFound,
		CodeGramInvalidFilter,
	}
	for _, locale := range []string{"en-US", "pt-BR"} {
		cat := errori18n.GetCatalog(locale)
		for _, code := range all {
			if got := cat.Format(string(code), nil); got == string(code) {
				t.Errorf("%s: code %s has no message", locale, code)
			}
		}
	}
}
