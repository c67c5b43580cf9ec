// Package gemini implements seoedit.Model using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/seoedit"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Model implements seoedit.Model at compile time.
var _ seoedit.Model = (*Model)(nil)

// Model implements seoedit.Model using Google Gemini.
type Model struct {
	client *genai.Client
	name   string
}

// NewModel creates a new Model. An empty name selects DefaultModel.
func NewModel(client *genai.Client, name string) *Model {
	if name == "" {
		name = DefaultModel
	}
	return &Model{client: client, name: name}
}

// CallTool asks Gemini to answer by calling req.Tool.
func (m *Model) CallTool(ctx context.Context, req *seoedit.ToolRequest) (*seoedit.ToolCall, error) {
	if req == nil || req.Tool.Name == "" {
		return nil, seoedit.Errorf(seoedit.EINVALID, "tool required")
	}

	result, err := m.client.Models.GenerateContent(ctx, m.name, userContent(req.Prompt), BuildToolConfig(req))
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EMODEL, "gemini: %v", err)
	}
	return ToolCallFromResponse(result, req.Tool.Name)
}

// Generate returns a free-text completion.
func (m *Model) Generate(ctx context.Context, req *seoedit.TextRequest) (string, error) {
	if req == nil || req.Prompt == "" {
		return "", seoedit.Errorf(seoedit.EINVALID, "prompt required")
	}

	result, err := m.client.Models.GenerateContent(ctx, m.name, userContent(req.Prompt), BuildTextConfig(req))
	if err != nil {
		return "", seoedit.Errorf(seoedit.EMODEL, "gemini: %v", err)
	}
	if result == nil {
		return "", seoedit.Errorf(seoedit.EMODEL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func userContent(prompt string) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}
}

func systemInstruction(text string) *genai.Content {
	if text == "" {
		return nil
	}
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// BuildToolConfig returns a config that declares req.Tool and forces Gemini
// to call it.
func BuildToolConfig(req *seoedit.ToolRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(req.System),
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        req.Tool.Name,
				Description: req.Tool.Description,
				Parameters:  ToSchema(req.Tool.Parameters),
			}},
		}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{req.Tool.Name},
			},
		},
	}
}

// BuildTextConfig returns the config for free-text generation.
func BuildTextConfig(req *seoedit.TextRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(req.System),
		Temperature:       req.Temperature,
	}
}

var schemaTypes = map[seoedit.SchemaType]genai.Type{
	seoedit.TypeObject:  genai.TypeObject,
	seoedit.TypeString:  genai.TypeString,
	seoedit.TypeInteger: genai.TypeInteger,
	seoedit.TypeNumber:  genai.TypeNumber,
	seoedit.TypeArray:   genai.TypeArray,
	seoedit.TypeBoolean: genai.TypeBoolean,
}

// ToSchema translates a seoedit.Schema into Gemini's schema dialect.
// Gemini only accepts enums on strings, so enums on other types are dropped
// and their bounds kept.
func ToSchema(s *seoedit.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaTypes[s.Type],
		Description: s.Description,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		Items:       ToSchema(s.Items),
		Required:    s.Required,
	}
	if s.Type == seoedit.TypeString {
		out.Enum = s.Enum
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = ToSchema(p)
		}
	}
	return out
}

// ToolCallFromResponse returns the call to name found in result.
// Returns ESCHEMA when the response contains no such call.
func ToolCallFromResponse(result *genai.GenerateContentResponse, name string) (*seoedit.ToolCall, error) {
	if result == nil {
		return nil, seoedit.Errorf(seoedit.EMODEL, "gemini returned nil result")
	}

	calls := result.FunctionCalls()
	for _, call := range calls {
		if call.Name != name {
			continue
		}
		args, err := json.Marshal(call.Args)
		if err != nil {
			return nil, seoedit.Errorf(seoedit.ESCHEMA, "encode %s arguments: %v", name, err)
		}
		return &seoedit.ToolCall{Name: call.Name, Arguments: args}, nil
	}

	if len(calls) > 0 {
		names := make([]string, len(calls))
		for i, c := range calls {
			names[i] = c.Name
		}
		return nil, seoedit.Errorf(seoedit.ESCHEMA, "expected call to %s, got %s", name, strings.Join(names, ", "))
	}
	return nil, seoedit.Errorf(seoedit.ESCHEMA, "expected call to %s, got text response", name)
}
