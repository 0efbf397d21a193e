package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("debug", "json", &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("order_id", 12).Info("order placed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order placed", line["msg"])
	assert.EqualValues(t, 12, line["order_id"])
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	l := NewWithOutput("loud", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}
