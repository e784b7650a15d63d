package pose

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPose is returned when a frame does not carry exactly KeypointCount keypoints
var ErrMalformedPose = errors.New("malformed pose")

// KeypointCount is the number of landmarks in every pose frame
const KeypointCount = 17

// Landmark indices. This ordering is the wire contract with the pose provider.
const (
	Nose = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
)

// Keypoint is one labelled 2D landmark in pixel space with a detection confidence
type Keypoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// Pose holds the keypoints of one detected body in one frame
type Pose [KeypointCount]Keypoint

// FromKeypoints builds a Pose from a provider keypoint list
func FromKeypoints(keypoints []Keypoint) (Pose, error) {
	var p Pose
	if len(keypoints) != KeypointCount {
		return p, fmt.Errorf("%w: got %d keypoints, want %d", ErrMalformedPose, len(keypoints), KeypointCount)
	}
	copy(p[:], keypoints)
	return p, nil
}

// Frame is the JSON shape of a single pose on the wire
type Frame struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// Decode parses one JSON frame and validates its shape
func Decode(raw []byte) (Pose, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Pose{}, fmt.Errorf("%w: %v", ErrMalformedPose, err)
	}
	return FromKeypoints(f.Keypoints)
}

// Encode renders a pose in the same JSON frame format that Decode accepts
func Encode(p Pose) ([]byte, error) {
	return json.Marshal(Frame{Keypoints: p[:]})
}
