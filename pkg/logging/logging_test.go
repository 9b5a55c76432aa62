package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdapterWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	adapter := Adapter{Logger: NewWithWriter("debug", &buf)}

	adapter.Debug("accountctl: lookup", "email", "a@x.com")
	adapter.Error("accountctl: create failed", errors.New("quota"), "email", "b@x.com")

	out := buf.String()
	require.Contains(t, out, "level=DEBUG")
	require.Contains(t, out, "email=a@x.com")
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "err=quota")
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	adapter := Adapter{Logger: NewWithWriter("error", &buf)}

	adapter.Debug("hidden")
	adapter.Info("hidden too")
	require.Empty(t, buf.String())
}

func TestNewWritesToRotatedFile(t *testing.T) {
	file := t.TempDir() + "/accountctl.log"
	logger := New("info", file, nil)
	logger.Info("hello")
	require.FileExists(t, file)
}

func TestNewWithoutFileUsesFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New("error", "", &buf)

	logger.Info("filtered")
	logger.Error("visible")

	require.NotContains(t, buf.String(), "filtered")
	require.Contains(t, buf.String(), "msg=visible")
}
