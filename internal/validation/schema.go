package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-localenav/internal/document"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: payload validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Kind   document.Kind
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Registry holds compiled payload schemas keyed by document kind. Kinds
// without a registered schema validate vacuously.
type Registry struct {
	compiled map[document.Kind]*jsonschema.Schema
}

// NewRegistry compiles the supplied schemas, failing fast on any schema that
// does not compile.
func NewRegistry(schemas map[document.Kind]map[string]any) (*Registry, error) {
	compiled := make(map[document.Kind]*jsonschema.Schema, len(schemas))
	for kind, schema := range schemas {
		if len(schema) == 0 {
			continue
		}
		s, err := compileSchema(schema)
		if err != nil {
			return nil, fmt.Errorf("%w: kind %s: %v", ErrSchemaInvalid, kind, err)
		}
		compiled[kind] = s
	}
	return &Registry{compiled: compiled}, nil
}

// ValidatePayload checks the payload against the kind's schema, if one is
// registered. A nil payload validates as an empty object.
func (r *Registry) ValidatePayload(kind document.Kind, payload map[string]any) error {
	if r == nil {
		return nil
	}
	schema, ok := r.compiled[kind]
	if !ok {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := schema.Validate(normalizeValue(payload)); err != nil {
		return &PayloadValidationError{
			Kind:   kind,
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// Validator adapts the registry to the document service's hook, translating
// failures into the service's payload sentinel.
func (r *Registry) Validator() document.PayloadValidator {
	return func(kind document.Kind, payload map[string]any) error {
		if err := r.ValidatePayload(kind, payload); err != nil {
			return fmt.Errorf("%w: %s", document.ErrPayloadInvalid, err)
		}
		return nil
	}
}

// normalizeValue round-trips the payload through JSON so typed Go values
// (ints, custom maps) validate the way their wire form would.
func normalizeValue(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return payload
	}
	return out
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
