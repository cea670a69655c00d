package main

import (
	"strings"
	"testing"
	"testing/fstest"

	i18ncatalog "github.com/louisbranch/gram/internal/platform/i18n/catalog"
)

func testBundle(t *testing.T) *i18ncatalog.Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en-US/board.yaml": {Data: []byte(`locale: "en-US"
namespace: "board"
messages:
  "board.title": "Board"
  "board.share": "Share"
  "board.new": "New board"
`)},
		"locales/pt-BR/board.yaml": {Data: []byte(`locale: "pt-BR"
namespace: "board"
messages:
  "board.title": "Tabuleiro"
  "board.legacy": "Antigo"
`)},
	}
	bundle, err := i18ncatalog.LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return bundle
}

func TestBuildReport(t *testing.T) {
	rep := buildReport(testBundle(t), "en-US")

	if len(rep.Locales) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(rep.Locales))
	}
	en, pt := rep.Locales[0], rep.Locales[1]
	if en.Locale != "en-US" || en.Missing != 0 || en.Completion != 100 {
		t.Fatalf("unexpected base locale status %+v", en)
	}
	if pt.Translated != 1 || pt.Missing != 2 || pt.Extra != 1 {
		t.Fatalf("unexpected pt-BR counts %+v", pt)
	}
	if pt.Completion != 33.3 {
		t.Fatalf("expected 33.3%% completion, got %.1f", pt.Completion)
	}
	if strings.Join(pt.MissingKeys, ",") != "board.new,board.share" {
		t.Fatalf("unexpected missing keys %v", pt.MissingKeys)
	}
	if strings.Join(pt.ExtraKeys, ",") != "board.legacy" {
		t.Fatalf("unexpected extra keys %v", pt.ExtraKeys)
	}
	if len(pt.Namespaces) != 1 || pt.Namespaces[0].Namespace != "board" || pt.Namespaces[0].Missing != 2 {
		t.Fatalf("unexpected namespaces %+v", pt.Namespaces)
	}
	if !rep.Incomplete() {
		t.Fatal("expected report to be incomplete")
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown(buildReport(testBundle(t), "en-US"))

	for _, want := range []string{
		"Base locale: `en-US`.",
		"| `pt-BR` | 3 | 1 | 2 | 1 | 33.3% |",
		"### Missing keys\n\n- `board.new`\n- `board.share`\n",
		"### Extra keys\n\n- `board.legacy`\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestEmbeddedCatalogsAreComplete(t *testing.T) {
	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if rep := buildReport(bundle, i18ncatalog.BaseLocale); rep.Incomplete() {
		t.Fatalf("embedded catalogs are incomplete:\n%s", renderMarkdown(rep))
	}
}

func TestPercent(t *testing.T) {
	if got := percent(0, 0); got != 100 {
		t.Fatalf("percent(0, 0) = %v", got)
	}
	if got := percent(2, 3); got != 66.7 {
		t.Fatalf("percent(2, 3) = %v", got)
	}
}
