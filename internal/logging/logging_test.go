package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobal(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })
}

func TestSetup_FileIsJSON(t *testing.T) {
	restoreGlobal(t)
	file := filepath.Join(t.TempDir(), "state", "devgenesis.log")

	closeFn, err := Setup(Options{Level: "info", File: file})
	require.NoError(t, err)

	logger := GetLogger("generator")
	logger.Info().Str("project", "demo").Msg("generated")
	logger.Debug().Msg("hidden")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "generator", entry["component"])
	assert.Equal(t, "demo", entry["project"])
	assert.Equal(t, "generated", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetup_VerboseConsole(t *testing.T) {
	restoreGlobal(t)
	var console bytes.Buffer

	closeFn, err := Setup(Options{Level: "warn", Verbose: true, Console: &console})
	require.NoError(t, err)
	defer closeFn()

	logger := GetLogger("cli")
	logger.Debug().Msg("debug shows when verbose")
	assert.Contains(t, console.String(), "debug shows when verbose")
}

func TestSetup_Quiet(t *testing.T) {
	restoreGlobal(t)
	var console bytes.Buffer

	closeFn, err := Setup(Options{Console: &console})
	require.NoError(t, err)
	defer closeFn()

	logger := GetLogger("cli")
	logger.Error().Msg("not printed")
	assert.Empty(t, console.String())
}

func TestSetup_Errors(t *testing.T) {
	restoreGlobal(t)

	_, err := Setup(Options{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	closeFn, err := Setup(Options{File: filepath.Join(blocker, "x.log")})
	assert.Error(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())
}

func TestTimeOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := TimeOperation(&logger, "render")
	done(nil)
	TimeOperation(&logger, "commands")(errors.New("exit status 1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var finished map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &finished))
	assert.Equal(t, "render", finished["operation"])
	assert.Equal(t, "debug", finished["level"])
	assert.Contains(t, finished, "duration")

	var failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &failed))
	assert.Equal(t, "commands", failed["operation"])
	assert.Equal(t, "warn", failed["level"])
	assert.Equal(t, "exit status 1", failed["error"])
}
