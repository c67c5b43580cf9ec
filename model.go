package seoedit

import (
	"context"
	"encoding/json"
)

// SchemaType is a JSON schema primitive type.
type SchemaType string

// SchemaType constants.
const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeArray   SchemaType = "array"
	TypeBoolean SchemaType = "boolean"
)

// Schema describes the shape of structured model output.
// Provider adapters translate it into their own schema dialect.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Tool is a named function the model is forced to call.
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// ToolRequest asks the model to answer by calling Tool.
type ToolRequest struct {
	System string
	Prompt string
	Tool   Tool
}

// ToolCall is the structured answer returned by the model.
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}

// TextRequest asks the model for free text.
type TextRequest struct {
	System      string
	Prompt      string
	Temperature *float32
}

// Model is a language model able to produce structured and free-text output.
type Model interface {
	// CallTool invokes the model constrained to call req.Tool.
	// Returns ESCHEMA when the response contains no tool call and
	// EMODEL when the request itself fails.
	CallTool(ctx context.Context, req *ToolRequest) (*ToolCall, error)

	// Generate returns a free-text completion.
	Generate(ctx context.Context, req *TextRequest) (string, error)
}
