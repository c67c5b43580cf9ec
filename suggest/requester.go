// Package suggest asks a language model for SEO suggestions, one facet at a
// time, and decodes the structured answer into seoedit.Suggestion values.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/fwojciec/seoedit"
)

// Ensure Requester implements seoedit.Requester at compile time.
var _ seoedit.Requester = (*Requester)(nil)

// Requester produces suggestions for one facet using a Model.
type Requester struct {
	model seoedit.Model
	facet seoedit.Facet
	tool  seoedit.Tool
}

// NewRequester creates a Requester for facet.
func NewRequester(model seoedit.Model, facet seoedit.Facet) *Requester {
	return &Requester{model: model, facet: facet, tool: ToolFor(facet)}
}

// NewRequesters creates one Requester per facet.
func NewRequesters(model seoedit.Model) map[seoedit.Facet]seoedit.Requester {
	m := make(map[seoedit.Facet]seoedit.Requester, len(seoedit.Facets))
	for _, f := range seoedit.Facets {
		m[f] = NewRequester(model, f)
	}
	return m
}

// Facet returns the facet this requester serves.
func (r *Requester) Facet() seoedit.Facet {
	return r.facet
}

// Suggest asks the model for a suggestion. Returns ESCHEMA when the model
// answers with anything but a call to the facet tool, and EMODEL when the
// call fails.
func (r *Requester) Suggest(ctx context.Context, req *seoedit.SuggestionRequest) (*seoedit.Suggestion, error) {
	if req == nil {
		return nil, seoedit.Errorf(seoedit.EINVALID, "suggestion request required")
	}

	call, err := r.model.CallTool(ctx, &seoedit.ToolRequest{
		System: SystemPrompt,
		Prompt: BuildPrompt(r.facet, req),
		Tool:   r.tool,
	})
	if err != nil {
		if seoedit.ErrorCode(err) == seoedit.EINTERNAL {
			return nil, seoedit.Errorf(seoedit.EMODEL, "%s: %v", r.tool.Name, err)
		}
		return nil, err
	}
	if call == nil || call.Name != r.tool.Name {
		return nil, seoedit.Errorf(seoedit.ESCHEMA, "expected call to %s", r.tool.Name)
	}

	var args arguments
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		return nil, seoedit.Errorf(seoedit.ESCHEMA, "decode %s arguments: %v", r.tool.Name, err)
	}

	return args.suggestion(r.facet, req.Text), nil
}

// arguments is the union of every facet schema. Ranges declared in the
// schema are not re-validated here.
type arguments struct {
	Original       string   `json:"original"`
	Suggestion     string   `json:"suggestion"`
	Reasoning      string   `json:"reasoning"`
	Improvement    string   `json:"improvement"`
	PowerWords     []string `json:"powerWords"`
	CurrentScore   *number  `json:"currentScore"`
	SuggestedScore *number  `json:"suggestedScore"`
	Priority       number   `json:"priority"`
	Position       number   `json:"position"`
	Level          number   `json:"level"`
}

func (a *arguments) suggestion(facet seoedit.Facet, text string) *seoedit.Suggestion {
	s := &seoedit.Suggestion{
		Facet:     facet,
		Original:  a.Original,
		Suggested: a.Suggestion,
		Reasoning: a.Reasoning,
	}
	if s.Original == "" {
		s.Original = text
	}

	switch facet {
	case seoedit.FacetTitle, seoedit.FacetDescription:
		s.Improvement = a.Improvement
		s.PowerWords = a.PowerWords
		if a.CurrentScore != nil || a.SuggestedScore != nil {
			s.Scores = &seoedit.ScoreDelta{
				Current:   a.CurrentScore.toFloat(),
				Suggested: a.SuggestedScore.toFloat(),
			}
		}
	case seoedit.FacetHeading:
		s.Priority = a.Priority.toInt()
		s.Position = a.Position.toInt()
		s.Level = a.Level.toInt()
	}
	return s
}

// number accepts a JSON number or a numeric string.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = number(f)
	return nil
}

func (n *number) toFloat() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func (n number) toInt() int {
	return int(math.Round(float64(n)))
}
