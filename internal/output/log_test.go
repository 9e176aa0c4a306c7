package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureLog runs SetupLogging with the logger writing into a buffer.
func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logWriter
	logWriter = &buf
	t.Cleanup(func() {
		logWriter = prev
		SetupLogging(LogConfig{})
	})
	SetupLogging(cfg)
	return &buf
}

var timestampRe = `^\d{2}:\d{2}:\d{2}`

func TestSetupLogging_Timestamps(t *testing.T) {
	tests := []struct {
		name string
		cfg  LogConfig
		want bool
	}{
		{"default on", LogConfig{}, true},
		{"explicitly off", LogConfig{Timestamps: BoolPtr(false)}, false},
		{"explicitly on", LogConfig{Timestamps: BoolPtr(true)}, true},
		{"verbose overrides off", LogConfig{Verbose: true, Timestamps: BoolPtr(false)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t, tt.cfg)
			Warn("building demo")

			line := strings.TrimSpace(buf.String())
			assert.Contains(t, line, "building demo")
			if tt.want {
				assert.Regexp(t, timestampRe, line)
			} else {
				assert.NotRegexp(t, timestampRe, line)
			}
		})
	}
}

func TestSetupLogging_VerboseShowsDebug(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Debug("resolved group")
	Info("loaded fyg.toml")
	assert.NotContains(t, buf.String(), "resolved group")
	assert.Contains(t, buf.String(), "loaded fyg.toml")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	buf = captureLog(t, LogConfig{Verbose: true})
	Debug("resolved group")
	assert.Contains(t, buf.String(), "resolved group")
	assert.Contains(t, buf.String(), ".go:", "verbose reports the caller")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestSetupLogging_DefaultsToStderr(t *testing.T) {
	assert.Equal(t, io.Writer(os.Stderr), logWriter)
}

func TestProjectLogger(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	l := ProjectLogger("my-app")
	assert.Contains(t, l.GetPrefix(), "p:my-app")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Warn("targets.wasm is set but multiplatform is false")
	assert.Contains(t, buf.String(), "p:my-app")
}

func TestPrint_UsesConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	Print("a")
	Println("b")
	assert.Equal(t, "ab\n", buf.String())
	assert.Same(t, &buf, Writer())
}
