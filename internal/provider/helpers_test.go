package provider

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

// markedPose returns a pose whose nose X identifies it
func markedPose(id float64) pose.Pose {
	var p pose.Pose
	for i := range p {
		p[i] = pose.Keypoint{X: float64(i), Y: float64(i) * 2, Score: 0.8}
	}
	p[pose.Nose].X = id
	return p
}

func encodeFrame(t *testing.T, p pose.Pose) []byte {
	t.Helper()
	raw, err := pose.Encode(p)
	require.NoError(t, err)
	return raw
}
