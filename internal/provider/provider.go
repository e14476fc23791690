// Package provider abstracts heterogeneous completion backends behind one
// canonical request shape. Adapters translate that shape onto each backend's
// wire protocol and surface failures as distinguishable error kinds; they
// perform no game logic and no JSON parsing beyond what the protocol itself
// requires.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Error kinds surfaced by adapters. Callers match with errors.Is.
var (
	// ErrAuth means the backend rejected our credentials.
	ErrAuth = errors.New("provider: authentication failed")
	// ErrTransport covers network failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("provider: transport failure")
	// ErrContentViolation means the backend refused the request on policy.
	ErrContentViolation = errors.New("provider: content violation")
	// ErrMalformedResponse means the backend answered but the body was
	// empty or not of the shape its own protocol promises.
	ErrMalformedResponse = errors.New("provider: malformed or empty response")
)

// ConfigurationError is a caller-input problem: no or invalid backend
// selected, or a required credential missing. It is the only error class
// that surfaces to the user instead of degrading into a fallback turn.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider configuration: %s", e.Reason)
}

// Request is the canonical completion request every adapter accepts.
type Request struct {
	Prompt            string
	SystemInstruction string
	Schema            *Schema
	// JSONMode asks the backend for strict JSON decoding where supported.
	JSONMode bool
}

// Adapter maps the canonical request onto one backend and returns the raw
// textual payload unmodified.
type Adapter interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Schema is a provider-neutral description of the expected response shape.
// Each adapter translates it into its backend's schema dialect.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Schema type names, standard JSON Schema spelling.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// JSON renders the schema as a JSON Schema document, for backends that only
// take the shape description as text.
func (s *Schema) JSON() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
