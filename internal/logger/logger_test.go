package logger_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"ippvm/internal/logger"
)

func TestQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf, false, true)

	log.Info("program loaded", "instructions", 3)
	require.Empty(t, buf.String())

	log.Error("runtime error", "code", 53)
	require.Contains(t, buf.String(), "IPPVM")
	require.Contains(t, buf.String(), "runtime error")
	require.Contains(t, buf.String(), "code=53")
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf, true, true)

	log.Debug("labels indexed", "count", 2)
	require.Contains(t, buf.String(), "labels indexed")
	require.Contains(t, buf.String(), "count=2")
}
