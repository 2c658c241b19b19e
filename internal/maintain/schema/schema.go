// Package schema validates request payloads against embedded JSON Schemas
// before any store access.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	dErrors "maintain/pkg/domain-errors"
)

// Kind names one embedded schema.
type Kind string

const (
	Category           Kind = "category"
	Instrument         Kind = "instrument"
	StatutoryProvision Kind = "statutory_provision"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://maintain.local/schemas/"

// Validator holds the compiled schemas.
type Validator struct {
	schemas map[Kind]*jsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	kinds := []Kind{Category, Instrument, StatutoryProvision}
	for _, kind := range kinds {
		raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", kind, err)
		}
		if err := c.AddResource(baseURL+string(kind)+".json", bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add %s schema: %w", kind, err)
		}
	}

	v := &Validator{schemas: make(map[Kind]*jsonschema.Schema, len(kinds))}
	for _, kind := range kinds {
		compiled, err := c.Compile(baseURL + string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		v.schemas[kind] = compiled
	}
	return v, nil
}

// MustNew is New for process start-up, where a broken embedded schema is a
// programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Decode validates body against the kind's schema and then unmarshals it
// into out. Every failure is a BadRequest carrying the first violation.
func (v *Validator) Decode(kind Kind, body []byte, out any) error {
	compiled, ok := v.schemas[kind]
	if !ok {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("no schema registered for %s", kind))
	}

	// jsonschema/v5 expects the raw JSON value decoded with UseNumber.
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	err := dec.Decode(&doc)
	if err == nil {
		if t, _ := dec.Token(); t != nil {
			err = fmt.Errorf("invalid character %v after top-level value", t)
		}
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body is not valid JSON")
	}
	if err := compiled.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return dErrors.New(dErrors.CodeBadRequest, firstViolation(verr))
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body failed validation")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Request body is not valid JSON")
	}
	return nil
}

// firstViolation follows the first cause down to its leaf.
func firstViolation(verr *jsonschema.ValidationError) string {
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	if leaf.InstanceLocation == "" {
		return leaf.Message
	}
	return fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message)
}
