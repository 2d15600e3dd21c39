package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport failures (timeouts, bad status, connection errors)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit represents rate limiting or an active variant cooldown
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeBlocked represents a page carrying a denial-of-access marker
	ErrorTypeBlocked ErrorType = "blocked"
	// ErrorTypeStructure represents a document where no listing rows were located
	ErrorTypeStructure ErrorType = "structure"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeExhausted represents a run where no variant produced a record
	ErrorTypeExhausted ErrorType = "exhausted"
	// ErrorTypeSink represents output write failures
	ErrorTypeSink ErrorType = "sink"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// CrawlerError represents a collector error tied to an optional source variant
type CrawlerError struct {
	Type    ErrorType
	Variant string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *CrawlerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Variant, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Variant, e.Message)
}

// Unwrap returns the underlying error
func (e *CrawlerError) Unwrap() error {
	return e.Err
}

// IsVariantLevel reports whether the error only abandons the current variant.
// Everything else terminates the run.
func (e *CrawlerError) IsVariantLevel() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeBlocked, ErrorTypeStructure, ErrorTypeParsing:
		return true
	default:
		return false
	}
}

// TypeOf returns the ErrorType carried by err, or "" when err is not a CrawlerError.
func TypeOf(err error) ErrorType {
	var ce *CrawlerError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ""
}

// Is reports whether err is a CrawlerError of the given type
func Is(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// New creates a new CrawlerError
func New(errType ErrorType, variant, message string, err error) *CrawlerError {
	return &CrawlerError{
		Type:    errType,
		Variant: variant,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(variant, message string, err error) *CrawlerError {
	return New(ErrorTypeNetwork, variant, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(variant string, duration time.Duration) *CrawlerError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, variant, message, nil)
}

// NewBlocked creates a new access denial error naming the matched marker
func NewBlocked(variant, marker string) *CrawlerError {
	return New(ErrorTypeBlocked, variant, fmt.Sprintf("block marker %q detected", marker), nil)
}

// NewStructure creates a new structural miss error
func NewStructure(variant, message string) *CrawlerError {
	return New(ErrorTypeStructure, variant, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(variant, message string, err error) *CrawlerError {
	return New(ErrorTypeParsing, variant, message, err)
}

// NewExhausted creates the terminal error for a run with no usable variant
func NewExhausted(tried int) *CrawlerError {
	return New(ErrorTypeExhausted, "", fmt.Sprintf("no records collected from %d variant(s)", tried), nil)
}

// NewSink creates a new sink error
func NewSink(message string, err error) *CrawlerError {
	return New(ErrorTypeSink, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *CrawlerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
