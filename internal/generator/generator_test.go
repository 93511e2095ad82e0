package generator

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	apperrors "github.com/railwayapp/envman/internal/errors"
	"github.com/railwayapp/envman/internal/filesystems"
	"github.com/railwayapp/envman/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleTemplate = `# Database
DATABASE_URL=postgresql://localhost/db  # url, required
PORT=8000  # int, required

# Optional
DEBUG=false  # bool, optional
`

// scriptedPrompter answers from a map and records what was asked.
type scriptedPrompter struct {
	answers map[string]string
	asked   []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, decl template.Declaration) (string, error) {
	p.asked = append(p.asked, decl.Key)
	return p.answers[decl.Key], nil
}

func TestGenerate_Defaults(t *testing.T) {
	env, err := Generate(context.Background(), template.Parse(exampleTemplate), Options{})
	require.NoError(t, err)

	assert.Equal(t, "DATABASE_URL=postgresql://localhost/db\nPORT=8000\nDEBUG=false\n", env.String())
}

func TestGenerate_PriorityOrder(t *testing.T) {
	tmpl := template.Parse("PORT=8000  # int\nHOST=localhost\nDEBUG=false  # bool, optional\n")
	prompter := &scriptedPrompter{answers: map[string]string{
		"PORT":  "9000",
		"HOST":  "example.com",
		"DEBUG": "  ",
	}}

	env, err := Generate(context.Background(), tmpl, Options{
		Environ:     map[string]string{"PORT": "7000"},
		Interactive: true,
		Prompter:    prompter,
	})
	require.NoError(t, err)

	assert.Equal(t, "7000", env.Get("PORT"), "environment wins over prompt and default")
	assert.Equal(t, "example.com", env.Get("HOST"), "prompt wins over default")
	assert.Equal(t, "false", env.Get("DEBUG"), "blank answer falls back to default")
	assert.Equal(t, []string{"HOST", "DEBUG"}, prompter.asked, "keys set in the environment are not prompted")
}

func TestGenerate_EnvironmentValueVerbatim(t *testing.T) {
	tmpl := template.Parse("EMPTY=default\nSPACED=x\n")

	env, err := Generate(context.Background(), tmpl, Options{
		Environ: map[string]string{"EMPTY": "", "SPACED": "  padded  "},
	})
	require.NoError(t, err)

	assert.Equal(t, "", env.Get("EMPTY"))
	assert.Equal(t, "  padded  ", env.Get("SPACED"))
}

func TestGenerate_NonInteractiveIgnoresPrompter(t *testing.T) {
	prompter := &scriptedPrompter{answers: map[string]string{"PORT": "1"}}

	env, err := Generate(context.Background(), template.Parse("PORT=8000\n"), Options{Prompter: prompter})
	require.NoError(t, err)

	assert.Equal(t, "8000", env.Get("PORT"))
	assert.Empty(t, prompter.asked)
}

func TestGenerate_DuplicateKeysLastWins(t *testing.T) {
	tmpl := template.Parse("A=1\nB=2\nA=3\n")

	env, err := Generate(context.Background(), tmpl, Options{})
	require.NoError(t, err)

	assert.Equal(t, "A=3\nB=2\n", env.String())
}

func TestGenerate_InteractiveRequiresPrompter(t *testing.T) {
	_, err := Generate(context.Background(), template.Parse("A=1\n"), Options{Interactive: true})
	assert.Error(t, err)
}

func TestGenerate_NilTemplate(t *testing.T) {
	env, err := Generate(context.Background(), nil, Options{Environ: map[string]string{"A": "1"}})
	require.NoError(t, err)
	assert.Equal(t, 0, env.Len())
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, template.Parse("A=1\n"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Expand(t *testing.T) {
	tmpl := template.Parse(strings.Join([]string{
		"HOST=localhost",
		"PORT=5432",
		"DATABASE_URL=postgres://${USER}@${HOST}:${PORT}/app",
		"MISSING=${NOPE}",
		"ESCAPED=$$literal",
	}, "\n"))

	env, err := Generate(context.Background(), tmpl, Options{
		Environ: map[string]string{"USER": "admin"},
		Expand:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://admin@localhost:5432/app", env.Get("DATABASE_URL"))
	assert.Equal(t, "", env.Get("MISSING"))
	assert.Equal(t, "$literal", env.Get("ESCAPED"))
}

func TestGenerate_WithoutExpandKeepsReferences(t *testing.T) {
	env, err := Generate(context.Background(), template.Parse("URL=http://${HOST}\n"), Options{
		Environ: map[string]string{"HOST": "example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://${HOST}", env.Get("URL"))
}

func TestGenerateFile(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env.example", []byte(exampleTemplate))
	mfs.AddFile(".env", []byte("STALE=1\n"))

	env, err := GenerateFile(context.Background(), mfs, ".env.example", ".env", Options{
		Environ: map[string]string{"PORT": "3000"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, env.Len())

	content, err := mfs.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "DATABASE_URL=postgresql://localhost/db\nPORT=3000\nDEBUG=false\n", string(content))
}

func TestGenerateFile_OptionalBoolDefault(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env.example", []byte("DEBUG=false  # bool, optional\n"))

	_, err := GenerateFile(context.Background(), mfs, ".env.example", ".env", Options{})
	require.NoError(t, err)

	content, _ := mfs.ReadFile(".env")
	assert.Contains(t, string(content), "DEBUG=false")
}

func TestGenerateFile_Interactive(t *testing.T) {
	mfs := filesystems.NewMemoryFS()
	mfs.AddFile(".env.example", []byte(exampleTemplate))
	var out bytes.Buffer

	_, err := GenerateFile(context.Background(), mfs, ".env.example", ".env", Options{
		Interactive: true,
		Prompter:    NewLinePrompter(strings.NewReader("\n9000\n"), &out),
	})
	require.NoError(t, err)

	content, _ := mfs.ReadFile(".env")
	assert.Equal(t, "DATABASE_URL=postgresql://localhost/db\nPORT=9000\nDEBUG=false\n", string(content))
	assert.Equal(t,
		"DATABASE_URL (url) [postgresql://localhost/db]: PORT (int) [8000]: DEBUG (bool) [optional] [false]: ",
		out.String())
}

func TestGenerateFile_IOErrors(t *testing.T) {
	mfs := filesystems.NewMemoryFS()

	_, err := GenerateFile(context.Background(), mfs, "missing.example", ".env", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingFile(err))

	mfs.AddFile(".env.example", []byte("A=1\n"))
	mfs.FailWrites(".env", fs.ErrPermission)

	_, err = GenerateFile(context.Background(), mfs, ".env.example", ".env", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsIO(err))
}
