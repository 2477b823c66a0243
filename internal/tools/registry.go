package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Registry holds the set of registered tools and is the single boundary where
// handler failures of any kind become structured error results. It is built
// once at startup; Invoke is safe for concurrent use afterwards.
type Registry struct {
	entries map[string]entry
}

type entry struct {
	spec    Spec
	handler Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool. A duplicate name is a configuration error and is
// fatal at startup, so it is returned rather than silently overwritten.
func (r *Registry) Register(spec Spec, h Handler) error {
	if spec.Name == "" {
		return fmt.Errorf("register tool: empty name")
	}
	if _, ok := r.entries[spec.Name]; ok {
		return fmt.Errorf("register tool %q: already registered", spec.Name)
	}
	r.entries[spec.Name] = entry{spec: spec, handler: h}
	return nil
}

// Specs returns the registered tool specs sorted by name.
func (r *Registry) Specs() []Spec {
	specs := make([]Spec, 0, len(r.entries))
	for _, e := range r.entries {
		specs = append(specs, e.spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Invoke validates raw against the named tool's schema and runs its handler.
// Every invocation produces exactly one Result; nothing escapes this boundary,
// panics included.
func (r *Registry) Invoke(ctx context.Context, name string, raw map[string]any) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("tool handler panicked", "tool", name, "panic", p)
			res = errorResult(fmt.Sprintf("internal failure in %s: %v", name, p))
		}
	}()

	e, ok := r.entries[name]
	if !ok {
		return errorResult(fmt.Sprintf("unknown tool %q", name))
	}

	args, err := normalizeArgs(e.spec, raw)
	if err != nil {
		return errorResult(err.Error())
	}

	out, err := e.handler(ctx, args)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

// normalizeArgs checks required parameters and types and fills in declared
// defaults for absent optional parameters. It reports the first failure only.
func normalizeArgs(spec Spec, raw map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(spec.Params))

	names := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := spec.Params[name]
		v, present := raw[name]
		if !present || v == nil {
			if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", name)
			}
			if p.Default != nil {
				args[name] = p.Default
			}
			continue
		}
		cv, err := coerce(name, p.Type, v)
		if err != nil {
			return nil, err
		}
		args[name] = cv
	}
	return args, nil
}

func coerce(name string, t ParamType, v any) (any, error) {
	switch t {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string", name)
		}
		return s, nil
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		default:
			return nil, fmt.Errorf("parameter %q must be a number", name)
		}
	default:
		return nil, fmt.Errorf("parameter %q has unsupported type %q", name, t)
	}
}
