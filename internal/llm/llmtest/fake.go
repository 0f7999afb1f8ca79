// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/trend-resolver/internal/llm"
)

// ErrScripted is returned when a Fake runs out of responses.
var ErrScripted = errors.New("llmtest: no scripted response")

// Fake is an llm.Client returning canned responses.
// Respond, when set, takes precedence over the Responses queue.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Respond   func(prompt string, tier llm.ModelTier) (string, error)
	Prompts   []string
	Closed    bool
}

var _ llm.Client = (*Fake)(nil)

// GenerateText implements llm.Client.
func (f *Fake) GenerateText(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)

	if f.Respond != nil {
		return f.Respond(prompt, tier)
	}
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrScripted
	}
	out := f.Responses[0]
	f.Responses = f.Responses[1:]
	return out, nil
}

// GenerateJSON implements llm.Client.
func (f *Fake) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	out, err := f.GenerateText(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(out), nil
}

// GetModel implements llm.Client.
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close implements llm.Client.
func (f *Fake) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// Calls returns how many prompts were sent.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}

// CallsContaining counts prompts that contain substr.
func (f *Fake) CallsContaining(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.Prompts {
		if strings.Contains(p, substr) {
			n++
		}
	}
	return n
}
