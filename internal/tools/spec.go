// Package tools implements the tool registry: the catalog of callable
// operations, argument validation against each operation's declared schema,
// and the uniform result envelope handed back to the transport.
package tools

import "context"

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
)

// ParamSpec describes one parameter of a tool's input schema.
// Default is applied when an optional parameter is absent from a call.
type ParamSpec struct {
	Type        ParamType
	Required    bool
	Default     any
	Description string
}

// Hints are the declarative capability annotations advertised with a tool.
type Hints struct {
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	OpenWorld   bool
}

// Spec declares one callable tool: its name, what it does, and the schema its
// arguments are validated against. Specs are created at startup and never
// mutated afterwards.
type Spec struct {
	Name        string
	Description string
	Params      map[string]ParamSpec
	Hints       Hints
}

// Handler executes a tool with validated, default-filled arguments.
// The returned string becomes the text payload of the result; a non-nil error
// becomes an error result at the registry boundary.
type Handler func(ctx context.Context, args map[string]any) (string, error)
