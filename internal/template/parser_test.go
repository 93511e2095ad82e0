package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Declaration
	}{
		{
			name: "plain assignment",
			line: "DATABASE_URL=postgresql://localhost/db",
			want: Declaration{
				Key:         "DATABASE_URL",
				Default:     "postgresql://localhost/db",
				Constraints: Constraints{Required: true, Type: TypeString},
			},
		},
		{
			name: "type and required",
			line: "PORT=8000  # int, required",
			want: Declaration{
				Key:         "PORT",
				Default:     "8000",
				Constraints: Constraints{Required: true, Type: TypeInt},
			},
		},
		{
			name: "optional",
			line: "OPTIONAL_VAR=default  # optional",
			want: Declaration{
				Key:         "OPTIONAL_VAR",
				Default:     "default",
				Constraints: Constraints{Required: false, Type: TypeString},
			},
		},
		{
			name: "encrypted url",
			line: "  API_URL = https://api.example.com   #  URL, Encrypted",
			want: Declaration{
				Key:         "API_URL",
				Default:     "https://api.example.com",
				Constraints: Constraints{Required: true, Type: TypeURL, Encrypted: true},
			},
		},
		{
			name: "empty default",
			line: "SECRET_KEY=  # required, encrypted",
			want: Declaration{
				Key:         "SECRET_KEY",
				Default:     "",
				Constraints: Constraints{Required: true, Type: TypeString, Encrypted: true},
			},
		},
		{
			name: "hash splits value",
			line: "COLOR=#fff",
			want: Declaration{
				Key:         "COLOR",
				Default:     "",
				Constraints: Constraints{Required: true, Type: TypeString},
			},
		},
		{
			name: "unknown tags ignored",
			line: "NAME=app # lowercase, whatever",
			want: Declaration{
				Key:         "NAME",
				Default:     "app",
				Constraints: Constraints{Required: true, Type: TypeString},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_Skips(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"# Database",
		"   # indented comment",
		"lowercase=value",
		"1PORT=8000",
		"NO_ASSIGNMENT",
		"export PORT=8000",
	}

	for _, line := range lines {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseLine_OptionalWinsOverRequired(t *testing.T) {
	for _, comment := range []string{"required, optional", "optional required", "OPTIONAL, REQUIRED, int"} {
		decl, ok := ParseLine("KEY=value # " + comment)
		require.True(t, ok)
		assert.False(t, decl.Constraints.Required, comment)
	}
}

func TestParseLine_TypePriority(t *testing.T) {
	tests := map[string]Type{
		"email, url":         TypeURL,
		"url, int":           TypeInt,
		"bool, string":       TypeString,
		"email":              TypeEmail,
		"bool, email, url":   TypeBool,
		"integer":            TypeInt,
		"no type annotation": TypeString,
	}

	for comment, want := range tests {
		decl, ok := ParseLine("KEY=value # " + comment)
		require.True(t, ok)
		assert.Equal(t, want, decl.Constraints.Type, comment)
	}
}

func TestTypeString(t *testing.T) {
	for _, typ := range []Type{TypeString, TypeInt, TypeBool, TypeURL, TypeEmail} {
		parsed, ok := ParseType(typ.String())
		require.True(t, ok)
		assert.Equal(t, typ, parsed)
	}

	_, ok := ParseType("float")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Type(42).String())
}
