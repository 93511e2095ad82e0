package generator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/railwayapp/envman/internal/template"
)

// Prompter asks the user for the value of a declaration. An empty answer
// means "use the default".
type Prompter interface {
	Prompt(ctx context.Context, decl template.Declaration) (string, error)
}

// LinePrompter prompts on out and reads one line per answer from in.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Prompt writes the prompt text and blocks until a line is read. End of
// input counts as an empty answer.
func (p *LinePrompter) Prompt(ctx context.Context, decl template.Declaration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprint(p.out, PromptText(decl)); err != nil {
		return "", errors.Wrap(err, "write prompt")
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrapf(err, "read value for %s", decl.Key)
	}
	return strings.TrimSpace(line), nil
}

// PromptText renders the prompt for decl, e.g. "PORT (int) [8000]: " or
// "DEBUG (bool) [optional] [false]: ".
func PromptText(decl template.Declaration) string {
	var b strings.Builder
	b.WriteString(decl.Key)
	if decl.Constraints.Type != template.TypeString {
		fmt.Fprintf(&b, " (%s)", decl.Constraints.Type)
	}
	if !decl.Constraints.Required {
		b.WriteString(" [optional]")
	}
	fmt.Fprintf(&b, " [%s]: ", decl.Default)
	return b.String()
}
