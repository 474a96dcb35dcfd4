package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minimize/internal/optim"
)

func TestConfig_Validate(t *testing.T) {
	testcases := map[string]struct {
		config Config
		valid  bool
	}{
		"default":       {config: DefaultConfig(), valid: true},
		"json debug":    {config: Config{Level: "debug", Format: "json"}, valid: true},
		"upper case":    {config: Config{Level: "WARN", Format: "Plain"}, valid: true},
		"bad level":     {config: Config{Level: "loud", Format: "text"}},
		"bad format":    {config: Config{Level: "info", Format: "xml"}},
		"empty":         {config: Config{}},
		"missing level": {config: Config{Format: "text"}},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	_, err = New(Config{Level: "info", Format: "xml"}, &buf)
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "plain", "text"}, Formats())
}

func TestCallbacks(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	cb := Callbacks(logger.WithField("optimizer", "lbfgs"))

	cb.Warn("not a descent direction, reset to steepest descent")
	cb.Error("line-search failed for LBFGS!")
	cb.Progress(&optim.State{G: []float64{3, 4}, F: 1.5, Iterations: 2})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, log.WarnLevel, entries[0].Level)
	assert.Equal(t, log.ErrorLevel, entries[1].Level)
	assert.Equal(t, "lbfgs", entries[1].Data["optimizer"])

	progress := entries[2]
	assert.Equal(t, log.DebugLevel, progress.Level)
	assert.Equal(t, "progress", progress.Message)
	assert.Equal(t, 2, progress.Data["iteration"])
	assert.Equal(t, 1.5, progress.Data["f"])
	assert.Equal(t, 5.0, progress.Data["gnorm"])
}

func TestCallbacks_ProgressSkippedAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.InfoLevel)

	Callbacks(log.NewEntry(logger)).Progress(&optim.State{G: []float64{1}})

	assert.Empty(t, hook.AllEntries())
}
