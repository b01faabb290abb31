package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Tool is one locally executable action the remote model may call.
// Parameters is the JSON-schema description of the argument payload,
// reflected from the handler's argument struct.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema

	// ContinuesResponse requests a follow-up model response after the
	// tool result is acknowledged, e.g. so the agent narrates a page
	// change it just performed.
	ContinuesResponse bool

	execute func(arguments string) (string, error)
}

type ToolOption func(*Tool)

// WithResponseContinuation marks the tool as one the model should keep
// talking after.
func WithResponseContinuation() ToolOption {
	return func(t *Tool) { t.ContinuesResponse = true }
}

// NewTool builds a tool whose raw JSON arguments are parsed into T
// before the handler runs. Schema details (descriptions, enums) are
// taken from jsonschema struct tags on T.
func NewTool[T any](name, description string, execute func(arguments T) (string, error), opts ...ToolOption) Tool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	var arguments T

	tool := Tool{
		Name:        name,
		Description: description,
		Parameters:  reflector.Reflect(&arguments),
		execute: func(raw string) (string, error) {
			var parsed T
			if raw != "" {
				if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
					return "", fmt.Errorf("failed to parse arguments for tool %q: %w", name, err)
				}
			}
			return execute(parsed)
		},
	}

	for _, opt := range opts {
		opt(&tool)
	}

	return tool
}

// Execute runs the tool against an opaque JSON argument payload.
func (t Tool) Execute(arguments string) (string, error) {
	if t.execute == nil {
		return "", fmt.Errorf("tool %q has no handler", t.Name)
	}
	return t.execute(arguments)
}

// Navigator is the injected page-navigation capability. The engine
// never imports a presentation layer; tests substitute their own.
type Navigator interface {
	Navigate(page string) error
}

// NavigationTools returns the default tool table for page navigation
// over the given capability.
func NavigationTools(navigator Navigator) []Tool {
	return []Tool{
		NewTool("navigate", "Navigate to a specific page in the app",
			func(arguments struct {
				Page string `json:"page" jsonschema:"description=Page path to navigate to,enum=/,enum=/about"`
			}) (string, error) {
				if arguments.Page == "" {
					return "", fmt.Errorf("missing page argument")
				}
				if err := navigator.Navigate(arguments.Page); err != nil {
					return "", fmt.Errorf("failed to navigate to %q: %w", arguments.Page, err)
				}
				return "Tool call navigate executed successfully.", nil
			},
			WithResponseContinuation(),
		),
	}
}
