// Package i18n defines the languages the platform serves and how request
// language values map onto them.
package i18n

import (
	"strings"

	"github.com/louisbranch/gram/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supportedTags = []language.Tag{
		language.AmericanEnglish,
		language.BrazilianPortuguese,
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses a language value and matches it to a supported tag.
// It reports false for malformed values and unsupported languages.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags returns the best supported tag for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, _ := matcher.Match(tags...)
	return supportedTags[index]
}

// LocaleForTag returns the catalog locale name for a tag.
func LocaleForTag(tag language.Tag) string {
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return catalog.BaseLocale
	}
	return supportedTags[index].String()
}

// Printer returns a message printer backed by the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(tag)
}
