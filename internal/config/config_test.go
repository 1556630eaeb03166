package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/sntool/internal/errors"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sntool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.Equal(t, FormatText, c.Format)
	assert.False(t, c.SkipBroken)
}

func TestLoad(t *testing.T) {
	path := write(t, "log_level: debug\nformat: json\nskip_broken: true\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, FormatJSON, c.Format)
	assert.True(t, c.SkipBroken)
	assert.Equal(t, ".", c.Output)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SNTOOL_TEST_OUT", "/tmp/dump")
	path := write(t, "output: ${SNTOOL_TEST_OUT}\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dump", c.Output)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"format", "format: xml\n"},
		{"log level", "log_level: loud\n"},
		{"empty output", "output: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(write(t, "format: [json\n"))
	assert.Error(t, err)
}
