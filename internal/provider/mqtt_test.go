package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestMQTTProvider_KeepsNewestFrame(t *testing.T) {
	p := NewMQTTProvider(MQTTOptions{Topic: "pose/frames"}, discardLogger())

	p.handleMessage(nil, fakeMessage{topic: "pose/frames", payload: encodeFrame(t, markedPose(1))})
	p.handleMessage(nil, fakeMessage{topic: "pose/frames", payload: encodeFrame(t, markedPose(2))})

	poses, err := p.EstimatePoses(context.Background())
	require.NoError(t, err)
	require.Len(t, poses, 1)
	assert.Equal(t, 2.0, poses[0][pose.Nose].X)

	poses, err = p.EstimatePoses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, poses, "a frame is consumed once")
}

func TestMQTTProvider_DropsMalformedPayload(t *testing.T) {
	logger, buf := bufferLogger()
	p := NewMQTTProvider(MQTTOptions{Topic: "pose/frames"}, logger)

	p.handleMessage(nil, fakeMessage{topic: "pose/frames", payload: []byte(`{"keypoints":[]}`)})

	poses, err := p.EstimatePoses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, poses)
	assert.Equal(t, Stats{Received: 0, Rejected: 1}, p.Stats())
	assert.Contains(t, buf.String(), "MQTTProvider: Dropping message on pose/frames")
}

func TestMQTTProvider_CloseWithoutConnect(t *testing.T) {
	p := NewMQTTProvider(MQTTOptions{}, discardLogger())
	assert.NotPanics(t, p.Close)
}
