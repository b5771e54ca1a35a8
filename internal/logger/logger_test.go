package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()

	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestInfoWithKeyValues(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("trip ended", "provider", "Gautrain", "fare_cents", 2400)

	assert.Contains(t, buf.String(), "trip ended")
	assert.Contains(t, buf.String(), "provider=Gautrain")
	assert.Contains(t, buf.String(), "fare_cents=2400")
}

func TestInfoOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	InfoLogger = log.New(&buf, "INFO: ", 0)

	Info("dangling", "key")

	assert.Contains(t, buf.String(), "dangling key")
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = log.New(&buf, "ERROR: ", 0)

	Errorf("advisory call failed: %v", "timeout")

	assert.Contains(t, buf.String(), "advisory call failed: timeout")
}
