package domain

import (
	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	errori18n "github.com/louisbranch/gram/internal/platform/errors/i18n"
	i18ncatalog "github.com/louisbranch/gram/internal/platform/i18n/catalog"
)

// ToolError is a classified tool failure. Its text leads with the error code
// so MCP clients can branch on it.
type ToolError struct {
	Code    apperrors.Code
	Message string
	Err     *apperrors.Error
}

func (e *ToolError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// toolError classifies err and renders its base-locale message.
func toolError(err error) error {
	appErr := apperrors.Classify(err)
	if appErr == nil {
		return nil
	}
	message := errori18n.GetCatalog(i18ncatalog.BaseLocale).Format(string(appErr.Code), appErr.Metadata)
	return &ToolError{Code: appErr.Code, Message: message, Err: appErr}
}
