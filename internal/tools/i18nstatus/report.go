package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	i18ncatalog "github.com/louisbranch/gram/internal/platform/i18n/catalog"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string            `json:"locale"`
	BaseKeys    int               `json:"base_keys"`
	Translated  int               `json:"translated"`
	Missing     int               `json:"missing"`
	Extra       int               `json:"extra"`
	Completion  float64           `json:"completion"`
	Namespaces  []namespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Completion float64 `json:"completion"`
}

// Incomplete reports whether any locale lacks a base key.
func (r report) Incomplete() bool {
	for _, locale := range r.Locales {
		if locale.Missing > 0 {
			return true
		}
	}
	return false
}

func buildReport(bundle *i18ncatalog.Bundle, baseLocale string) report {
	baseMessages := bundle.LocaleMessages(baseLocale)
	statuses := make([]localeStatus, 0)
	for _, locale := range bundle.Locales() {
		localeMessages := bundle.LocaleMessages(locale)
		missing := keyDiff(baseMessages, localeMessages)
		extra := keyDiff(localeMessages, baseMessages)
		translated := len(baseMessages) - len(missing)

		namespaces := make([]namespaceStatus, 0)
		for _, namespace := range namespaceUnion(bundle, baseLocale, locale) {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			nsMissing := keyDiff(baseNS, bundle.NamespaceMessages(locale, namespace))
			nsTranslated := len(baseNS) - len(nsMissing)
			namespaces = append(namespaces, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Missing:    len(nsMissing),
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, localeStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(baseMessages)),
			Namespaces:  namespaces,
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	return report{BaseLocale: baseLocale, Locales: statuses}
}

func renderMarkdown(rep report) string {
	var b strings.Builder
	b.WriteString("# Translation status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Missing | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Missing, ns.Completion)
		}
		writeKeyList(&b, "Missing keys", locale.MissingKeys)
		writeKeyList(&b, "Extra keys", locale.ExtraKeys)
	}
	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func writeJSON(path string, rep report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// keyDiff returns the sorted keys of from that are absent in to.
func keyDiff(from, to map[string]string) []string {
	out := make([]string, 0)
	for key := range from {
		if _, ok := to[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func namespaceUnion(bundle *i18ncatalog.Bundle, locales ...string) []string {
	set := map[string]struct{}{}
	for _, locale := range locales {
		for _, namespace := range bundle.Namespaces(locale) {
			set[namespace] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for namespace := range set {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
