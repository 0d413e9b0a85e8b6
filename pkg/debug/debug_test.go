package debug_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lolmark/pkg/debug"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := debug.NewLogger(&buf, debug.Options{Level: zerolog.InfoLevel, Format: debug.FormatJSON, Caller: true})

	logger.Debug().Msg("hidden")
	logger.Info().Int("tokens", 3).Msg("scanned source")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "exactly one json line expected: %s", buf.String())

	assert.Equal(t, "scanned source", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["tokens"])
	assert.NotEmpty(t, entry["run"])
	assert.NotEmpty(t, entry["time"])
	assert.Contains(t, entry, "caller")
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := debug.NewLogger(&buf, debug.Options{Level: zerolog.WarnLevel, Format: debug.FormatConsole})

	logger.Info().Msg("quiet")
	logger.Warn().Str("artifact", "a.html").Msg("could not open artifact")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "could not open artifact")
	assert.Contains(t, out, "artifact=a.html")
	assert.NotContains(t, out, "\x1b[", "color is off")
}

func TestGetPackageAndFuncFromFuncName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPkg  string
		wantFunc string
	}{
		{
			name:     "function",
			input:    "github.com/walteh/lolmark/pkg/compiler.Compile",
			wantPkg:  "github.com/walteh/lolmark/pkg/compiler",
			wantFunc: "Compile",
		},
		{
			name:     "pointer method",
			input:    "github.com/walteh/lolmark/pkg/compiler.(*Compiler).Build",
			wantPkg:  "github.com/walteh/lolmark/pkg/compiler",
			wantFunc: "(*Compiler).Build",
		},
		{
			name:     "no package path",
			input:    "main.run",
			wantPkg:  "main",
			wantFunc: "run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, fn := debug.GetPackageAndFuncFromFuncName(tt.input)
			assert.Equal(t, tt.wantPkg, pkg)
			assert.Equal(t, tt.wantFunc, fn)
		})
	}
}

func TestFormatCaller(t *testing.T) {
	assert.Equal(t, "pkg/x:file.go:12", debug.FormatCaller("pkg/x", "/a/b/file.go", 12, false))
}
