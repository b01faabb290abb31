package reconcile

import (
	"strings"
	"testing"
)

func TestNewToolParsesArguments(t *testing.T) {
	tool := NewTool("greet", "Greet someone by name",
		func(arguments struct {
			Name string `json:"name"`
		}) (string, error) {
			return "hello " + arguments.Name, nil
		},
	)

	response, err := tool.Execute(`{"name":"ema"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != "hello ema" {
		t.Errorf("unexpected response %q", response)
	}
}

func TestNewToolRejectsMalformedArguments(t *testing.T) {
	tool := NewTool("greet", "Greet someone by name",
		func(arguments struct {
			Name string `json:"name"`
		}) (string, error) {
			t.Error("handler must not run on malformed arguments")
			return "", nil
		},
	)

	if _, err := tool.Execute(`{"name":`); err == nil {
		t.Fatal("expected an error for malformed arguments")
	}
}

func TestNewToolEmptyArgumentsUseZeroValue(t *testing.T) {
	tool := NewTool("ping", "Report liveness",
		func(struct{}) (string, error) {
			return "pong", nil
		},
	)

	response, err := tool.Execute("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != "pong" {
		t.Errorf("unexpected response %q", response)
	}
}

func TestNewToolReflectsSchema(t *testing.T) {
	tool := NewTool("navigate", "Navigate to a specific page in the app",
		func(arguments struct {
			Page string `json:"page" jsonschema:"description=Page path to navigate to,enum=/,enum=/about"`
		}) (string, error) {
			return "", nil
		},
	)

	if tool.Parameters == nil {
		t.Fatal("expected a reflected schema")
	}
	property, ok := tool.Parameters.Properties.Get("page")
	if !ok {
		t.Fatal("expected a schema property for the page argument")
	}
	if len(property.Enum) != 2 {
		t.Errorf("expected 2 enum values, got %v", property.Enum)
	}
}

func TestNavigationToolsRequirePage(t *testing.T) {
	navigator := &navigatorRecorder{}
	tools := NavigationTools(navigator)
	if len(tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools))
	}

	if _, err := tools[0].Execute(`{}`); err == nil {
		t.Error("expected an error when the page argument is missing")
	}
	if calls := navigator.calls.Load(); calls != 0 {
		t.Errorf("expected no navigation, got %d", calls)
	}

	response, err := tools[0].Execute(`{"page":"/"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(response, "navigate") {
		t.Errorf("unexpected response %q", response)
	}
	if !tools[0].ContinuesResponse {
		t.Error("expected navigation to request a response continuation")
	}
}

func TestToolWithoutHandlerFails(t *testing.T) {
	tool := Tool{Name: "empty"}
	if _, err := tool.Execute(""); err == nil {
		t.Error("expected an error for a tool without a handler")
	}
}
