// Package i18nhttp resolves the language of a gram web request and builds the
// language switcher links.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"

	platformi18n "github.com/louisbranch/gram/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter that selects a language.
	LangParam = "lang"
	// LangCookieName remembers an explicit ?lang= choice.
	LangCookieName = "gram_lang"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// Source records which part of the request chose the language.
type Source string

const (
	SourceDefault Source = "default"
	SourceQuery   Source = "query"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "header"
)

// Choice is the language resolved for one request.
type Choice struct {
	Tag    language.Tag
	Source Source
}

// Locale returns the catalog locale of the choice.
func (c Choice) Locale() string {
	return platformi18n.LocaleForTag(c.Tag)
}

// Printer returns the x/text printer for the choice.
func (c Choice) Printer() *message.Printer {
	return platformi18n.Printer(c.Tag)
}

// Resolve picks the language from ?lang=, then the gram_lang cookie, then
// Accept-Language. Unsupported values are skipped; nothing usable means the
// default language.
func Resolve(r *http.Request) Choice {
	if r == nil {
		return Choice{Tag: platformi18n.DefaultTag(), Source: SourceDefault}
	}
	if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
		return Choice{Tag: tag, Source: SourceQuery}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return Choice{Tag: tag, Source: SourceCookie}
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return Choice{Tag: platformi18n.MatchTags(tags), Source: SourceHeader}
		}
	}
	return Choice{Tag: platformi18n.DefaultTag(), Source: SourceDefault}
}

// Remember stores a ?lang= choice in the gram_lang cookie. Choices from any
// other source are already remembered or implicit.
func Remember(w http.ResponseWriter, c Choice) {
	if c.Source != SourceQuery {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    c.Tag.String(),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// Option is one entry of the language switcher.
type Option struct {
	Tag string
	// LabelKey is the core namespace key naming the language, for example
	// core.lang_pt_br.
	LabelKey string
	// URL is the current page with lang set to Tag.
	URL    string
	Active bool
}

// Options lists every supported language for the page at u, marking the one
// matching active.
func Options(u *url.URL, active language.Tag) []Option {
	path, query := "/", url.Values{}
	if u != nil {
		if u.Path != "" {
			path = u.Path
		}
		if parsed, err := url.ParseQuery(u.RawQuery); err == nil {
			query = parsed
		}
	}
	activeLocale := platformi18n.LocaleForTag(active)

	supported := platformi18n.SupportedTags()
	options := make([]Option, 0, len(supported))
	for _, tag := range supported {
		locale := platformi18n.LocaleForTag(tag)
		query.Set(LangParam, locale)
		options = append(options, Option{
			Tag:      locale,
			LabelKey: "core.lang_" + strings.ToLower(strings.ReplaceAll(locale, "-", "_")),
			URL:      (&url.URL{Path: path, RawQuery: query.Encode()}).String(),
			Active:   locale == activeLocale,
		})
	}
	return options
}
