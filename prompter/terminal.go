package prompter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Prompter that writes questions to out and reads answers line by line from in.
// An in that is already a *bufio.Reader is read directly, so unread input stays available to its other readers.
func NewTerminal(in io.Reader, out io.Writer) Prompter {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &terminal{
		in:  reader,
		out: out,
	}
}

func (t *terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "Failed to read answer")
	}
	return strings.TrimSpace(line), nil
}

// PromptChoice accepts a choice's number (starting from 1), its full text, or its first letter
func (t *terminal) PromptChoice(ctx context.Context, message string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, errors.New("No choices to prompt for")
	}
	fmt.Fprintln(t.out, message)
	for i, choice := range choices {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, choice)
	}
	fmt.Fprintf(t.out, "Choose [1-%d]: ", len(choices))
	answer, err := t.readLine(ctx)
	if err != nil {
		return 0, err
	}
	return parseChoice(answer, choices)
}

func parseChoice(answer string, choices []string) (int, error) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(choices) {
			return 0, errors.Errorf("Invalid choice #: %d", n)
		}
		return n - 1, nil
	}
	if answer == "" {
		return 0, errors.New("No choice entered")
	}
	for i, choice := range choices {
		if strings.EqualFold(answer, choice) {
			return i, nil
		}
	}
	match := -1
	for i, choice := range choices {
		if choice != "" && strings.EqualFold(answer, choice[:1]) {
			if match >= 0 {
				return 0, errors.Errorf("Ambiguous choice: %q", answer)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, errors.Errorf("Invalid choice: %q", answer)
	}
	return match, nil
}

func (t *terminal) PromptText(ctx context.Context, message string) (string, error) {
	fmt.Fprint(t.out, message+": ")
	return t.readLine(ctx)
}
