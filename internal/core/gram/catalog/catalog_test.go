package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/gram/internal/core/gram"
)

func names(puzzles []Puzzle) []string {
	out := make([]string, 0, len(puzzles))
	for _, p := range puzzles {
		out = append(out, p.Name)
	}
	return out
}

func TestDefaultNames(t *testing.T) {
	want := []string{"arrow", "checker", "cross", "heart", "house", "smiley"}
	if diff := cmp.Diff(want, Default().Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, names(Default().List())); diff != "" {
		t.Fatalf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPuzzlesRoundTrip(t *testing.T) {
	for _, p := range Default().List() {
		t.Run(p.Name, func(t *testing.T) {
			decoded, err := gram.Decode(p.Encoded)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", p.Encoded, err)
			}
			if !decoded.Equal(p.Grid) {
				t.Fatalf("decoded grid differs:\n%s\nwant\n%s", decoded, p.Grid)
			}
			again, err := gram.Encode(decoded)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if again != p.Encoded {
				t.Fatalf("re-encode = %q, want %q", again, p.Encoded)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	p, ok := Default().Lookup("arrow")
	if !ok {
		t.Fatal("expected arrow puzzle")
	}
	if p.Encoded != "grb2f1b2rb1f3b1rf5rb2f1b2rb2f1b2" {
		t.Fatalf("Encoded = %q", p.Encoded)
	}
	if p.Size() != 5 || p.Filled() != 11 {
		t.Fatalf("Size() = %d, Filled() = %d; want 5, 11", p.Size(), p.Filled())
	}
	if _, ok := Default().Lookup("missing"); ok {
		t.Fatal("expected missing puzzle lookup to fail")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	c := Default()
	got := c.Names()
	got[0] = "changed"
	if c.Names()[0] != "arrow" {
		t.Fatal("Names() exposed internal slice")
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"b.txt":     {Data: []byte("XO\nOX\n")},
		"a.txt":     {Data: []byte("O")},
		"notes.md":  {Data: []byte("ignored")},
		"dir/c.txt": {Data: []byte("X")},
	}
	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, c.Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
	b, _ := c.Lookup("b")
	if b.Encoded != "grb1f1rf1b1" {
		t.Fatalf("Encoded = %q", b.Encoded)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target any
	}{
		{name: "bad character", data: "X#\nXX", target: new(*gram.ParseError)},
		{name: "not square", data: "XXX\nXXX", target: new(*gram.ShapeError)},
		{name: "run too long", data: "XXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX\nXXXXXXXXXX", target: new(*gram.EncodingRangeError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"broken.txt": {Data: []byte(tt.data)}})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.As(err, tt.target) {
				t.Fatalf("Load() error = %v, want %T", err, tt.target)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "", want: []string{"arrow", "checker", "cross", "heart", "house", "smiley"}},
		{filter: "   ", want: []string{"arrow", "checker", "cross", "heart", "house", "smiley"}},
		{filter: "size = 7", want: []string{"heart", "house"}},
		{filter: "size >= 7 AND filled < 30", want: []string{"house"}},
		{filter: `name = "heart" OR name = "arrow"`, want: []string{"arrow", "heart"}},
		{filter: "NOT (size = 9)", want: []string{"arrow", "checker", "cross", "heart", "house"}},
		{filter: "filled != 8 AND size < 5", want: []string{}},
		{filter: "size <= 4", want: []string{"checker"}},
		{filter: "filled > 30", want: []string{"heart", "smiley"}},
		{filter: `name > "h"`, want: []string{"heart", "house", "smiley"}},
		{filter: `name = "missing"`, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := Default().Filter(tt.filter)
			if err != nil {
				t.Fatalf("Filter(%q) error = %v", tt.filter, err)
			}
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tt.filter, diff)
			}
		})
	}
}

func TestFilterErrors(t *testing.T) {
	for _, filter := range []string{
		"color = 3",
		`size = "seven"`,
		"size = ",
		"(size = 3",
	} {
		t.Run(filter, func(t *testing.T) {
			_, err := Default().Filter(filter)
			var filterErr *FilterError
			if !errors.As(err, &filterErr) {
				t.Fatalf("Filter(%q) error = %v, want *FilterError", filter, err)
			}
			if filterErr.Filter != filter {
				t.Fatalf("FilterError.Filter = %q, want %q", filterErr.Filter, filter)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		field string
		want  []string
	}{
		{field: FieldName, want: []string{"arrow", "checker", "cross", "heart", "house", "smiley"}},
		{field: FieldSize, want: []string{"checker", "arrow", "cross", "heart", "house", "smiley"}},
		{field: FieldFilled, want: []string{"checker", "cross", "arrow", "house", "smiley", "heart"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			puzzles := Default().List()
			if err := Order(puzzles, tt.field); err != nil {
				t.Fatalf("Order(%q) error = %v", tt.field, err)
			}
			if diff := cmp.Diff(tt.want, names(puzzles)); diff != "" {
				t.Fatalf("Order(%q) mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
	if err := Order(Default().List(), "color"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
