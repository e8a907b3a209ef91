// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Analysis errors
const (
	ErrCodeInsufficientInput     ErrorCode = "INSUFFICIENT_INPUT"
	ErrCodeScorerFailure         ErrorCode = "SCORER_FAILURE"
	ErrCodeUnknownTrait          ErrorCode = "UNKNOWN_TRAIT"
	ErrCodeCatalogEmpty          ErrorCode = "CATALOG_EMPTY"
	ErrCodeModelLoadFailed       ErrorCode = "MODEL_LOAD_FAILED"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeCharacterNotFound     ErrorCode = "CHARACTER_NOT_FOUND"
	ErrCodeParseError            ErrorCode = "PARSE_ERROR"
)

// Boundary errors
const (
	ErrCodeChatTimeout      ErrorCode = "CHAT_TIMEOUT"
	ErrCodeChatFailed       ErrorCode = "CHAT_FAILED"
	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule    ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeAuthentication  ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the normalized internal error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches another StandardError with the same code.
func (e *StandardError) Is(target error) bool {
	var other *StandardError
	if stderrors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Types
// ==========================

// BPMNError is what gets thrown into the process.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables flattens the error for process variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInsufficientInputError(details string) *StandardError {
	return newError(ErrCodeInsufficientInput, "Insufficient input for analysis", details, false)
}

func NewScorerFailureError(err error) *StandardError {
	return newError(ErrCodeScorerFailure, "Trait scorer failed", err.Error(), false)
}

func NewUnknownTraitError(trait string) *StandardError {
	return newError(ErrCodeUnknownTrait, "Unknown personality trait", fmt.Sprintf("trait: %s", trait), false)
}

func NewCatalogEmptyError() *StandardError {
	return newError(ErrCodeCatalogEmpty, "Character catalog is empty", "", false)
}

func NewModelLoadFailedError(path string, err error) *StandardError {
	return newError(ErrCodeModelLoadFailed, "Model could not be loaded",
		fmt.Sprintf("path: %s, error: %s", path, err.Error()), false)
}

func NewInputValidationError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed", details, false)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err.Error(), false)
}

func NewCharacterNotFoundError(name string) *StandardError {
	return newError(ErrCodeCharacterNotFound, "Character not found in catalog", fmt.Sprintf("character: %s", name), false)
}

func NewChatTimeoutError() *StandardError {
	return newError(ErrCodeChatTimeout, "Character chat timeout", "chat gateway exceeded timeout", true)
}

func NewChatFailedError(err error) *StandardError {
	return newError(ErrCodeChatFailed, "Character chat gateway error", err.Error(), true)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Analysis cache unavailable", err.Error(), true)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. BPMN Mapping
// ==========================

// BPMNErrorMapping maps internal codes to the error codes modeled in BPMN.
// Codes missing here are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInsufficientInput:     "INSUFFICIENT_INPUT",
	ErrCodeScorerFailure:         "SCORER_FAILURE",
	ErrCodeUnknownTrait:          "INPUT_VALIDATION_FAILED",
	ErrCodeCatalogEmpty:          "CATALOG_EMPTY",
	ErrCodeModelLoadFailed:       "MODEL_LOAD_FAILED",
	ErrCodeInputValidationFailed: "INPUT_VALIDATION_FAILED",
	ErrCodeCharacterNotFound:     "CHARACTER_NOT_FOUND",
	ErrCodeParseError:            "PARSE_ERROR",
	ErrCodeChatTimeout:           "CHAT_TIMEOUT",
	ErrCodeChatFailed:            "CHAT_FAILED",
	ErrCodeCacheUnavailable:      "CACHE_UNAVAILABLE",
}

// GetRetryCount returns how many retries a code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeChatFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeCacheUnavailable,
		ErrCodeTimeout:
		return 2

	case ErrCodeChatTimeout:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError for the process engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError, or wraps it as an internal
// error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and dashboards.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CHAT"):
		return "CHAT"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "MODEL") || strings.Contains(codeStr, "SCORER") || strings.Contains(codeStr, "CATALOG"):
		return "ANALYZER"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "TRAIT") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "EXTERNAL"
	default:
		return "OTHER"
	}
}
