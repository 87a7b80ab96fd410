package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("warn", &buf)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("skipped")
	log.WithField("load_id", "abc").Warn("Dataset cache unavailable")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Dataset cache unavailable", entry["msg"])
	assert.Equal(t, "abc", entry["load_id"])
}

func TestNewWithOutput_InvalidLevel(t *testing.T) {
	log := NewWithOutput("loud", &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
