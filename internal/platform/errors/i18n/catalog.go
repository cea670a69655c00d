// Package i18n renders user-facing messages for error codes from the errors
// namespace of the locale catalog.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/gram/internal/platform/i18n/catalog"
)

// Catalog holds the parsed message templates of one locale, keyed by error
// code.
type Catalog struct {
	templates map[string]*template.Template
	raw       map[string]string
}

var (
	cacheMu sync.Mutex
	// cache maps requested and resolved locales to their built catalog.
	cache = map[string]*Catalog{}
)

// GetCatalog returns the error catalog for locale. Empty or unknown locales
// resolve to the base locale, and every locale resolving to the same messages
// shares one Catalog.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if c, ok := cache[requested]; ok {
		return c
	}
	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, i18ncatalog.ErrorsNamespace)
	c, ok := cache[resolved]
	if !ok {
		c = NewCatalog(messages)
		cache[resolved] = c
	}
	cache[requested] = c
	return c
}

// NewCatalog parses messages once. A message that is not a valid template is
// kept and rendered verbatim.
func NewCatalog(messages map[string]string) *Catalog {
	c := &Catalog{
		templates: make(map[string]*template.Template, len(messages)),
		raw:       make(map[string]string, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		t, err := template.New(code).Option("missingkey=zero").Parse(text)
		if err != nil {
			continue
		}
		c.templates[code] = t
	}
	return c
}

// Format renders the message for code with metadata. Missing metadata keys
// render empty; an unknown code renders as the code itself.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	raw, ok := c.raw[code]
	if !ok {
		return code
	}
	t, ok := c.templates[code]
	if !ok {
		return raw
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}
