package suggest

import (
	"context"
	"strings"

	"github.com/fwojciec/seoedit"
)

// CompletionSystemPrompt frames editor autocompletion.
const CompletionSystemPrompt = "You are an AI writing assistant that continues existing text based on context from prior text. " +
	"Give more weight/priority to the later characters than the beginning ones. " +
	"Limit your response to no more than 200 characters, but make sure to construct complete sentences."

// CompletionTemperature is the sampling temperature for completions.
const CompletionTemperature float32 = 0.7

// Ensure Completer implements seoedit.Completer at compile time.
var _ seoedit.Completer = (*Completer)(nil)

// Completer continues editor text using a Model.
type Completer struct {
	model seoedit.Model
}

// NewCompleter creates a new Completer.
func NewCompleter(model seoedit.Model) *Completer {
	return &Completer{model: model}
}

// Complete returns a continuation of prompt.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", seoedit.Errorf(seoedit.EINVALID, "prompt required")
	}
	temp := CompletionTemperature
	text, err := c.model.Generate(ctx, &seoedit.TextRequest{
		System:      CompletionSystemPrompt,
		Prompt:      prompt,
		Temperature: &temp,
	})
	if err != nil {
		if seoedit.ErrorCode(err) == seoedit.EINTERNAL {
			return "", seoedit.Errorf(seoedit.EMODEL, "completion: %v", err)
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}
