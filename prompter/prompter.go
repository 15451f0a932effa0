package prompter

import (
	"context"

	"github.com/pkg/errors"
)

// Prompter asks the user questions
type Prompter interface {
	// PromptChoice synchronously prompts user to choose an option from a list
	PromptChoice(ctx context.Context, message string, choices []string) (int, error)
	// PromptText synchronously prompts a user to enter some text
	PromptText(ctx context.Context, message string) (string, error)
}

// Channel is a Prompter answered asynchronously by another goroutine, i.e. a UI
type Channel interface {
	Prompter
	// Requests returns a channel to listen for prompt requests
	Requests() <-chan Request
	// Respond submits a response to a previously issued prompt
	Respond(resp Response)
}

type prompt struct {
	requests  chan Request
	responses chan Response
}

// New creates a Channel prompter
func New() Channel {
	return &prompt{
		requests:  make(chan Request),
		responses: make(chan Response, 1),
	}
}

func (p *prompt) Respond(resp Response) {
	if cap(p.responses) > 0 {
		p.responses <- resp
	}
}

func (p *prompt) Requests() <-chan Request {
	return p.requests
}

func (p *prompt) send(ctx context.Context, req Request) error {
	select {
	case p.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *prompt) PromptChoice(ctx context.Context, message string, choices []string) (int, error) {
	if err := p.send(ctx, newChoicesRequest(message, choices)); err != nil {
		return 0, err
	}
	select {
	case response := <-p.responses:
		if response.Err != nil {
			return 0, response.Err
		}
		if response.Choice < 0 || response.Choice >= len(choices) {
			return 0, errors.Errorf("Invalid choice #: %d", response.Choice)
		}
		return response.Choice, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *prompt) PromptText(ctx context.Context, message string) (string, error) {
	if err := p.send(ctx, newTextRequest(message)); err != nil {
		return "", err
	}
	select {
	case response := <-p.responses:
		return response.Text, response.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
