// Package engineerr defines the typed error kinds the search engine raises
// for mutating operations. Query execution never raises these — malformed
// or missing query clauses degrade to empty result sets instead (see
// pkg/query).
package engineerr

import "fmt"

// ValidationError reports a document that failed schema or shape checks:
// missing id, or a value incompatible with its field's declared mapping.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Msg)
	}
	return fmt.Sprintf("validation error on field %q: %s", e.Field, e.Msg)
}

// NewValidationError builds a ValidationError not tied to a specific field.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// NewFieldValidationError builds a ValidationError tied to a field.
func NewFieldValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// NotFoundError reports an operation against a named index that does not exist.
type NotFoundError struct {
	IndexName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("index %q not found", e.IndexName)
}

// NewNotFoundError builds a NotFoundError for the named index.
func NewNotFoundError(indexName string) *NotFoundError {
	return &NotFoundError{IndexName: indexName}
}

// ConfigError reports an out-of-range configuration value: BM25 parameters
// outside their valid domain, or a shard count below 1.
type ConfigError struct {
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %q: %s", e.Option, e.Msg)
}

// NewConfigError builds a ConfigError for the named option.
func NewConfigError(option, msg string) *ConfigError {
	return &ConfigError{Option: option, Msg: msg}
}

// StateError reports an operation invoked on an engine or index after
// shutdown.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error: %s", e.Msg)
}

// NewStateError builds a StateError.
func NewStateError(msg string) *StateError {
	return &StateError{Msg: msg}
}
