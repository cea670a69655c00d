package board

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	errori18n "github.com/louisbranch/gram/internal/platform/errors/i18n"
	"github.com/louisbranch/gram/internal/services/shared/i18nhttp"
	"golang.org/x/text/message"
)

// localizer formats board copy and error messages for one request.
type localizer struct {
	choice  i18nhttp.Choice
	locale  string
	printer *message.Printer
}

// resolveLocalizer picks the request language and persists an explicit
// ?lang= choice as a cookie.
func resolveLocalizer(w http.ResponseWriter, r *http.Request) localizer {
	choice := i18nhttp.Resolve(r)
	i18nhttp.Remember(w, choice)
	return localizer{
		choice:  choice,
		locale:  choice.Locale(),
		printer: choice.Printer(),
	}
}

// T formats a printf-style message key.
func (l localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Error renders the user-facing message for a classified error.
func (l localizer) Error(err *apperrors.Error) string {
	if err == nil {
		return ""
	}
	msg := errori18n.GetCatalog(l.locale).Format(string(err.Code), err.Metadata)
	if strings.TrimSpace(msg) == "" {
		return err.Error()
	}
	return msg
}
