package prompter

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPromptChoice(t *testing.T) {
	p := New()
	go func() {
		req := <-p.Requests()
		assert.Equal(t, Request{Message: "Install?", Choices: []string{"No", "Yes"}}, req)
		p.Respond(Response{Choice: 1})
	}()
	choice, err := p.PromptChoice(context.Background(), "Install?", []string{"No", "Yes"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)
}

func TestChannelPromptChoiceInvalid(t *testing.T) {
	p := New()
	go func() {
		<-p.Requests()
		p.Respond(Response{Choice: 5})
	}()
	_, err := p.PromptChoice(context.Background(), "Install?", []string{"No", "Yes"})
	assert.EqualError(t, err, "Invalid choice #: 5")

	someErr := errors.New("some error")
	go func() {
		<-p.Requests()
		p.Respond(Response{Err: someErr})
	}()
	_, err = p.PromptChoice(context.Background(), "Install?", []string{"No", "Yes"})
	assert.Equal(t, someErr, err)
}

func TestChannelPromptText(t *testing.T) {
	p := New()
	go func() {
		req := <-p.Requests()
		assert.True(t, req.Text)
		p.Respond(Response{Text: "hello"})
	}()
	text, err := p.PromptText(context.Background(), "Say something")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestChannelCancelled(t *testing.T) {
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.PromptChoice(ctx, "Nobody listening", []string{"a"})
	assert.Equal(t, context.Canceled, err)
	_, err = p.PromptText(ctx, "Nobody listening")
	assert.Equal(t, context.Canceled, err)
}

func TestTerminalPromptChoice(t *testing.T) {
	for _, tc := range []struct {
		description string
		input       string
		expect      int
		expectErr   string
	}{
		{description: "number", input: "2\n", expect: 1},
		{description: "full text", input: "yes\n", expect: 1},
		{description: "first letter", input: "n\n", expect: 0},
		{description: "no trailing newline", input: "y", expect: 1},
		{description: "out of range", input: "3\n", expectErr: "Invalid choice #: 3"},
		{description: "unknown", input: "maybe\n", expectErr: `Invalid choice: "maybe"`},
		{description: "blank", input: "\n", expectErr: "No choice entered"},
		{description: "closed input", input: "", expectErr: "Failed to read answer: EOF"},
	} {
		t.Run(tc.description, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminal(strings.NewReader(tc.input), &out)
			choice, err := p.PromptChoice(context.Background(), "Proceed with installation?", []string{"No", "Yes"})
			assert.Equal(t, "Proceed with installation?\n  1) No\n  2) Yes\nChoose [1-2]: ", out.String())
			if tc.expectErr != "" {
				assert.EqualError(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, choice)
		})
	}
}

func TestTerminalAmbiguousChoice(t *testing.T) {
	p := NewTerminal(strings.NewReader("a\n"), &bytes.Buffer{})
	_, err := p.PromptChoice(context.Background(), "Which?", []string{"aur", "all"})
	assert.EqualError(t, err, `Ambiguous choice: "a"`)

	_, err = p.PromptChoice(context.Background(), "Which?", nil)
	assert.EqualError(t, err, "No choices to prompt for")
}

func TestTerminalSharesBufferedReader(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("2\nafter install\n"))
	p := NewTerminal(in, &bytes.Buffer{})
	choice, err := p.PromptChoice(context.Background(), "Proceed with installation?", []string{"No", "Yes"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)

	rest, err := in.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "after install\n", rest)
}

func TestTerminalPromptText(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminal(strings.NewReader("  firefox \nsecond\n"), &out)
	text, err := p.PromptText(context.Background(), "Package")
	require.NoError(t, err)
	assert.Equal(t, "firefox", text)
	assert.Equal(t, "Package: ", out.String())

	text, err = p.PromptText(context.Background(), "Package")
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}
