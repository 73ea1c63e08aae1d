package genai

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/garyellow/groundwater-bot-go/internal/stringutil"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrorAction defines what the chain does after a provider error.
type ErrorAction int

const (
	// ActionRetry marks a transient error; the chain moves to the next provider.
	ActionRetry ErrorAction = iota
	// ActionFallback marks quota exhaustion; the chain moves to the next provider.
	ActionFallback
	// ActionFail marks a permanent error; the chain stops.
	ActionFail
)

// String returns a human-readable string for the error action.
func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// LLMError wraps a provider error with its HTTP status.
type LLMError struct {
	Err        error
	StatusCode int
	Provider   Provider
}

// Error implements the error interface.
func (e *LLMError) Error() string {
	msg := string(e.Provider) + ": " + e.Err.Error()
	if e.StatusCode > 0 {
		msg += " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// WrapError attaches the provider and the SDK-reported status code, if any.
func WrapError(err error, provider Provider) error {
	if err == nil {
		return nil
	}
	return &LLMError{Err: err, StatusCode: statusCodeOf(err), Provider: provider}
}

// statusCodeOf extracts the HTTP status from either SDK's error type.
func statusCodeOf(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

// ClassifyError determines the appropriate action based on the error:
//   - Transient errors (429, 5xx, network, timeout) -> Retry
//   - Quota exhaustion -> Fallback
//   - Permanent errors (400, 401, 403, 404, cancellation) -> Fail
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionFail
	}

	if errors.Is(err, context.Canceled) {
		return ActionFail
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ActionRetry
	}

	errStr := strings.ToLower(err.Error())

	// Quota is checked before the status code: providers report it as 429.
	if stringutil.ContainsAny(errStr, "quota", "daily limit", "monthly limit", "billing") {
		return ActionFallback
	}

	var llmErr *LLMError
	if errors.As(err, &llmErr) && llmErr.StatusCode > 0 {
		return classifyStatusCode(llmErr.StatusCode)
	}

	switch {
	case stringutil.ContainsAny(errStr, "rate limit", "too many requests", "resource_exhausted", "429"):
		return ActionRetry
	case stringutil.ContainsAny(errStr, "unavailable", "internal server error", "bad gateway",
		"gateway timeout", "overloaded", "capacity", "500", "502", "503", "504"):
		return ActionRetry
	case stringutil.ContainsAny(errStr, "timeout", "deadline", "connection"):
		return ActionRetry
	case stringutil.ContainsAny(errStr, "400", "invalid", "bad request", "malformed",
		"401", "unauthorized", "unauthenticated", "403", "forbidden", "permission denied",
		"404", "not found", "422", "unprocessable"):
		return ActionFail
	}

	// Unknown errors are treated as transient.
	return ActionRetry
}

// classifyStatusCode determines action based on HTTP status code.
func classifyStatusCode(statusCode int) ErrorAction {
	switch {
	case statusCode == http.StatusTooManyRequests,
		statusCode == http.StatusRequestTimeout,
		statusCode == http.StatusConflict,
		statusCode >= 500 && statusCode < 600:
		return ActionRetry
	case statusCode >= 400 && statusCode < 500:
		return ActionFail
	default:
		return ActionRetry
	}
}

// ContinuesChain reports whether the chain should try the next provider.
func ContinuesChain(err error) bool {
	return ClassifyError(err) != ActionFail
}
