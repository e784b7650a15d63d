package go_func_utils

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_PassesThroughResult(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)

	assert.NoError(t, Recover(logger, "provider", func() error { return nil }))

	sentinel := errors.New("camera gone")
	assert.ErrorIs(t, Recover(logger, "provider", func() error { return sentinel }), sentinel)
}

func TestRecover_ConvertsPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	err := Recover(logger, "provider", func() error { panic("bad frame") })

	require.Error(t, err)
	assert.Equal(t, "provider panicked: bad frame", err.Error())
	assert.Contains(t, buf.String(), "PANIC in provider: bad frame")
}

func TestSafeGo_RunsFn(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	done := make(chan struct{})

	SafeGo(logger, func() { close(done) })
	<-done
}
