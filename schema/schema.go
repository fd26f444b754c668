// Package schema generates JSON Schema documents from Go types for use
// as build output hints. A schema passed along with a task description
// tells the service what shape the function's output object should
// take.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Reflector is shared by all generation helpers. DoNotReference inlines
// nested definitions so the emitted document carries no $ref.
var Reflector = &jsonschema.Reflector{
	DoNotReference: true,
}

// Generate produces a JSON Schema from a Go struct type. Field shape is
// controlled with json and jsonschema tags:
//
//	type Receipt struct {
//	    Total    float64 `json:"total" jsonschema:"required,description=Grand total"`
//	    Currency string  `json:"currency" jsonschema:"required"`
//	    Items    int     `json:"items,omitempty"`
//	}
//
//	hint, err := schema.Generate[Receipt]()
func Generate[T any]() (json.RawMessage, error) {
	var zero T
	s := Reflector.Reflect(&zero)
	return json.Marshal(s)
}

// FromValue produces a JSON Schema from a value rather than a type
// parameter.
func FromValue(v any) (json.RawMessage, error) {
	s := Reflector.Reflect(v)
	return json.Marshal(s)
}

// MustGenerate is like Generate but panics on error. Intended for
// package-level hint definitions.
func MustGenerate[T any]() json.RawMessage {
	s, err := Generate[T]()
	if err != nil {
		panic(err)
	}
	return s
}
