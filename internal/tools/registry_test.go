package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testSpec() Spec {
	return Spec{
		Name:        "demo",
		Description: "test tool",
		Params: map[string]ParamSpec{
			"query": {Type: TypeString, Required: true},
			"limit": {Type: TypeNumber, Default: 10.0},
			"pool":  {Type: TypeString, Default: "pump"},
		},
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := NewRegistry()
	h := func(context.Context, map[string]any) (string, error) { return "", nil }

	if err := reg.Register(testSpec(), h); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register(testSpec(), h); err == nil {
		t.Fatal("expected error for duplicate registration")
	}
}

func TestInvoke_UnknownTool(t *testing.T) {
	reg := NewRegistry()
	res := reg.Invoke(context.Background(), "frobnicate", map[string]any{})
	if !res.IsError {
		t.Fatal("expected error result for unknown tool")
	}
	if !strings.Contains(res.Text(), "unknown tool") {
		t.Errorf("unexpected message: %q", res.Text())
	}
}

func TestInvoke_MissingRequired(t *testing.T) {
	reg := NewRegistry()
	called := false
	err := reg.Register(testSpec(), func(context.Context, map[string]any) (string, error) {
		called = true
		return "", nil
	})
	if err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"limit": 5.0})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(res.Text(), `missing required parameter "query"`) {
		t.Errorf("unexpected message: %q", res.Text())
	}
	if called {
		t.Error("handler must not run on validation failure")
	}
}

func TestInvoke_WrongType(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testSpec(), func(context.Context, map[string]any) (string, error) {
		return "", nil
	}); err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"query": 42.0})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(res.Text(), `parameter "query" must be a string`) {
		t.Errorf("unexpected message: %q", res.Text())
	}
}

func TestInvoke_DefaultsApplied(t *testing.T) {
	reg := NewRegistry()
	var got map[string]any
	if err := reg.Register(testSpec(), func(_ context.Context, args map[string]any) (string, error) {
		got = args
		return "ok", nil
	}); err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"query": "sol"})
	if res.IsError {
		t.Fatalf("unexpected error: %q", res.Text())
	}
	if got["limit"] != 10.0 {
		t.Errorf("expected default limit 10, got %v", got["limit"])
	}
	if got["pool"] != "pump" {
		t.Errorf("expected default pool, got %v", got["pool"])
	}
	if got["query"] != "sol" {
		t.Errorf("expected query passed through, got %v", got["query"])
	}
}

func TestInvoke_SuccessEnvelope(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testSpec(), func(context.Context, map[string]any) (string, error) {
		return `[{"address":"A","name":"Sol","symbol":"SOL","decimals":9}]`, nil
	}); err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"query": "sol"})
	if res.IsError {
		t.Fatalf("unexpected error: %q", res.Text())
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	if res.Content[0].Kind != "text" {
		t.Errorf("expected kind text, got %q", res.Content[0].Kind)
	}
	if res.Content[0].Payload != `[{"address":"A","name":"Sol","symbol":"SOL","decimals":9}]` {
		t.Errorf("unexpected payload: %q", res.Content[0].Payload)
	}
}

func TestInvoke_HandlerError(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testSpec(), func(context.Context, map[string]any) (string, error) {
		return "", errors.New("provider exploded")
	}); err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"query": "x"})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if res.Text() != "Error: provider exploded" {
		t.Errorf("unexpected message: %q", res.Text())
	}
}

func TestInvoke_HandlerPanic(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(testSpec(), func(context.Context, map[string]any) (string, error) {
		panic("boom")
	}); err != nil {
		t.Fatal(err)
	}

	res := reg.Invoke(context.Background(), "demo", map[string]any{"query": "x"})
	if !res.IsError {
		t.Fatal("expected error result from panicking handler")
	}
	if !strings.Contains(res.Text(), "boom") {
		t.Errorf("expected panic message in result, got %q", res.Text())
	}
}

func TestSpecs_Sorted(t *testing.T) {
	reg := NewRegistry()
	h := func(context.Context, map[string]any) (string, error) { return "", nil }
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(Spec{Name: name}, h); err != nil {
			t.Fatal(err)
		}
	}
	specs := reg.Specs()
	if len(specs) != 3 {
		t.Fatalf("expected 3 specs, got %d", len(specs))
	}
	if specs[0].Name != "alpha" || specs[2].Name != "zeta" {
		t.Errorf("specs not sorted: %v", []string{specs[0].Name, specs[1].Name, specs[2].Name})
	}
}
