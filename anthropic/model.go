// Package anthropic implements seoedit.Model using Anthropic's Messages API
// with forced tool use.
package anthropic

import (
	"context"
	"strconv"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/seoedit"
	"github.com/rotisserie/eris"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = "claude-haiku-4-5-20251001"

// DefaultMaxTokens bounds every response.
const DefaultMaxTokens = 1024

// Ensure Model implements seoedit.Model at compile time.
var _ seoedit.Model = (*Model)(nil)

// Model implements seoedit.Model using the official anthropic-sdk-go.
type Model struct {
	client    sdk.Client
	name      string
	maxTokens int64
}

// NewModel creates a new Model. An empty name selects DefaultModel.
// opts are passed to the SDK client after the API key; SDK retries are
// off unless opts turn them back on.
func NewModel(apiKey, name string, opts ...option.RequestOption) *Model {
	if name == "" {
		name = DefaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &Model{
		client:    sdk.NewClient(opts...),
		name:      name,
		maxTokens: DefaultMaxTokens,
	}
}

// CallTool asks Claude to answer by calling req.Tool.
func (m *Model) CallTool(ctx context.Context, req *seoedit.ToolRequest) (*seoedit.ToolCall, error) {
	if req == nil || req.Tool.Name == "" {
		return nil, seoedit.Errorf(seoedit.EINVALID, "tool required")
	}

	params := m.params(req.System, req.Prompt)
	params.Tools = []sdk.ToolUnionParam{{OfTool: ToToolParam(req.Tool)}}
	params.ToolChoice = sdk.ToolChoiceUnionParam{
		OfTool: &sdk.ToolChoiceToolParam{Name: req.Tool.Name},
	}

	msg, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, seoedit.WrapError(seoedit.EMODEL, eris.Wrap(err, "anthropic: create message"))
	}

	var other []string
	for _, block := range msg.Content {
		if block.Type != "tool_use" {
			continue
		}
		if block.Name == req.Tool.Name {
			return &seoedit.ToolCall{Name: block.Name, Arguments: block.Input}, nil
		}
		other = append(other, block.Name)
	}
	if len(other) > 0 {
		return nil, seoedit.Errorf(seoedit.ESCHEMA, "expected call to %s, got %s", req.Tool.Name, strings.Join(other, ", "))
	}
	return nil, seoedit.Errorf(seoedit.ESCHEMA, "expected call to %s, got text response", req.Tool.Name)
}

// Generate returns a free-text completion.
func (m *Model) Generate(ctx context.Context, req *seoedit.TextRequest) (string, error) {
	if req == nil || req.Prompt == "" {
		return "", seoedit.Errorf(seoedit.EINVALID, "prompt required")
	}

	params := m.params(req.System, req.Prompt)
	if req.Temperature != nil {
		params.Temperature = sdk.Float(float64(*req.Temperature))
	}

	msg, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", seoedit.WrapError(seoedit.EMODEL, eris.Wrap(err, "anthropic: create message"))
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (m *Model) params(system, prompt string) sdk.MessageNewParams {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(m.name),
		MaxTokens: m.maxTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	return params
}

// ToToolParam translates a seoedit.Tool into an Anthropic tool definition.
func ToToolParam(tool seoedit.Tool) *sdk.ToolParam {
	p := &sdk.ToolParam{
		Name:        tool.Name,
		Description: sdk.String(tool.Description),
	}
	if tool.Parameters != nil {
		p.InputSchema = sdk.ToolInputSchemaParam{
			Properties: properties(tool.Parameters.Properties),
			Required:   tool.Parameters.Required,
		}
	}
	return p
}

func properties(props map[string]*seoedit.Schema) map[string]any {
	out := make(map[string]any, len(props))
	for name, p := range props {
		out[name] = JSONSchema(p)
	}
	return out
}

// JSONSchema renders s as a JSON Schema object.
func JSONSchema(s *seoedit.Schema) map[string]any {
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = enumValues(s.Type, s.Enum)
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	if s.Items != nil {
		out["items"] = JSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out["properties"] = properties(s.Properties)
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

// enumValues converts enum literals to numbers for numeric types.
func enumValues(t seoedit.SchemaType, values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		switch t {
		case seoedit.TypeInteger:
			if n, err := strconv.Atoi(v); err == nil {
				out = append(out, n)
				continue
			}
		case seoedit.TypeNumber:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, f)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
