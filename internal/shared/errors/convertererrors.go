package errors

import (
	stderrors "errors"
	"net/http"
)

// Converter-specific error types, mirrored on AuthError's wrap-AppError shape.
const (
	ErrorTypeParse    ErrorType = "parse_error"
	ErrorTypeFetch    ErrorType = "fetch_error"
	ErrorTypeTemplate ErrorType = "template_error"
	ErrorTypeConfig   ErrorType = "config_error"
)

// ParseError reports a malformed link or subscription container. It is
// per-item and recoverable: the offending node is skipped, the rest of the
// source continues.
type ParseError struct {
	*AppError
	ShouldLog bool
}

func (e *ParseError) Error() string { return e.AppError.Error() }
func (e *ParseError) Unwrap() error { return e.AppError }

// NewParseError wraps a malformed link or container body. Source identifies
// the raw bytes (e.g. a truncated link or a line number) for the Details field.
func NewParseError(message string, source string) *ParseError {
	return &ParseError{
		AppError: &AppError{
			Type:    ErrorTypeParse,
			Message: message,
			Code:    http.StatusUnprocessableEntity,
			Details: source,
		},
		ShouldLog: true,
	}
}

// FetchError reports a subscription or ruleset URL that could not be
// retrieved. It is per-source and recoverable: the source is skipped.
type FetchError struct {
	*AppError
	ShouldLog bool
}

func (e *FetchError) Error() string { return e.AppError.Error() }
func (e *FetchError) Unwrap() error { return e.AppError }

// NewFetchError wraps a failed subscription or ruleset retrieval.
func NewFetchError(message string, url string) *FetchError {
	return &FetchError{
		AppError: &AppError{
			Type:    ErrorTypeFetch,
			Message: message,
			Code:    http.StatusBadGateway,
			Details: url,
		},
		ShouldLog: true,
	}
}

// TemplateError reports a base-config document that failed to parse. Unlike
// ParseError and FetchError, this is fatal for the whole emission: there is
// no document to splice rules or proxies into.
type TemplateError struct {
	*AppError
	ShouldLog bool
}

func (e *TemplateError) Error() string { return e.AppError.Error() }
func (e *TemplateError) Unwrap() error { return e.AppError }

// NewTemplateError wraps a base-config document parse failure.
func NewTemplateError(message string, path string) *TemplateError {
	return &TemplateError{
		AppError: &AppError{
			Type:    ErrorTypeTemplate,
			Message: message,
			Code:    http.StatusInternalServerError,
			Details: path,
		},
		ShouldLog: true,
	}
}

// ConfigError reports an unrecognized local file shape during subscription
// decoding. It ends that source with a logged error, but other sources
// continue.
type ConfigError struct {
	*AppError
	ShouldLog bool
}

func (e *ConfigError) Error() string { return e.AppError.Error() }
func (e *ConfigError) Unwrap() error { return e.AppError }

// NewConfigError wraps an unrecognized or malformed local config file.
func NewConfigError(message string, path string) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Type:    ErrorTypeConfig,
			Message: message,
			Code:    http.StatusBadRequest,
			Details: path,
		},
		ShouldLog: true,
	}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var target *ParseError
	return stderrors.As(err, &target)
}

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var target *FetchError
	return stderrors.As(err, &target)
}

// IsTemplateError reports whether err is (or wraps) a TemplateError.
func IsTemplateError(err error) bool {
	var target *TemplateError
	return stderrors.As(err, &target)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return stderrors.As(err, &target)
}
