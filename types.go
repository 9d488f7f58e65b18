package vrshell

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidIndex is returned when a controller or eye index is outside its
// declared range. It indicates an integration error in the host.
var ErrInvalidIndex = errors.New("vrshell: index out of range")

// Eye identifies one side of a stereo pair.
type Eye int

const (
	// EyeLeft is the left eye.
	EyeLeft Eye = iota

	// EyeRight is the right eye.
	EyeRight

	// EyeCount is the number of eyes in a stereo pair.
	EyeCount = 2
)

// String returns the eye name.
func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "Left"
	case EyeRight:
		return "Right"
	default:
		return fmt.Sprintf("Eye(%d)", int(e))
	}
}

// Valid reports whether e is EyeLeft or EyeRight.
func (e Eye) Valid() bool {
	return e == EyeLeft || e == EyeRight
}

// Eyes lists both eyes in submission order.
var Eyes = [EyeCount]Eye{EyeLeft, EyeRight}

// RenderMode selects how the headset positions the viewer.
type RenderMode int

const (
	// RenderModeStandalone computes an absolute head offset from the first
	// tracked position (head-relative tracking).
	RenderModeStandalone RenderMode = iota

	// RenderModeWindowed uses externally supplied world positions directly.
	RenderModeWindowed
)

// String returns the render mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderModeStandalone:
		return "standalone"
	case RenderModeWindowed:
		return "windowed"
	default:
		return "unknown"
	}
}

// ParseRenderMode converts a configuration name to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case "standalone", "":
		return RenderModeStandalone, nil
	case "windowed":
		return RenderModeWindowed, nil
	default:
		return 0, fmt.Errorf("vrshell: unknown render mode %q", s)
	}
}

// Pose is a rigid transform: position plus orientation.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: mgl32.QuatIdent()}
}

// Mat4 returns the pose as a transform: rotate first, then translate.
func (p Pose) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.Elem()).Mul4(p.Orientation.Normalize().Mat4())
}

// TrackingStatus reports which parts of a TrackingSample are valid.
type TrackingStatus uint32

const (
	// TrackingOrientationValid is set when the head orientation is tracked.
	TrackingOrientationValid TrackingStatus = 1 << iota

	// TrackingPositionValid is set when the head position is tracked.
	TrackingPositionValid
)

// Has reports whether all bits of flag are set.
func (s TrackingStatus) Has(flag TrackingStatus) bool {
	return s&flag == flag
}

// EyeView holds the per-eye matrices of one tracking sample.
type EyeView struct {
	// View is the world-to-eye matrix.
	View mgl32.Mat4

	// Projection is the eye projection matrix.
	Projection mgl32.Mat4
}

// TrackingSample is one head tracking result, delivered by the platform once
// per frame. It is immutable once delivered and consumed by every layer
// during a single update pass.
type TrackingSample struct {
	// FrameIndex is the monotonically increasing frame counter.
	FrameIndex uint64

	// DisplayTime is the predicted display time of the frame.
	DisplayTime time.Duration

	// Status reports which head pose components are valid.
	Status TrackingStatus

	// HeadPose is the tracked head pose.
	HeadPose Pose

	// CenterEyeView is the world-to-view matrix of the center eye.
	CenterEyeView mgl32.Mat4

	// Eyes holds per-eye view and projection.
	Eyes [EyeCount]EyeView
}

// View returns the view matrix for eye.
// It panics if eye is not EyeLeft or EyeRight.
func (s *TrackingSample) View(eye Eye) mgl32.Mat4 {
	return s.Eyes[eye].View
}

// NewTrackingSample builds a sample from a head pose, deriving the center and
// per-eye views from the inter-pupillary distance.
func NewTrackingSample(frame uint64, displayTime time.Duration, head Pose, ipd float32, projection mgl32.Mat4) TrackingSample {
	headMatrix := head.Mat4()
	center := headMatrix.Inv()
	s := TrackingSample{
		FrameIndex:    frame,
		DisplayTime:   displayTime,
		Status:        TrackingOrientationValid | TrackingPositionValid,
		HeadPose:      head,
		CenterEyeView: center,
	}
	half := ipd / 2
	s.Eyes[EyeLeft] = EyeView{
		View:       mgl32.Translate3D(half, 0, 0).Mul4(center),
		Projection: projection,
	}
	s.Eyes[EyeRight] = EyeView{
		View:       mgl32.Translate3D(-half, 0, 0).Mul4(center),
		Projection: projection,
	}
	return s
}

// Rect is a normalized sub-rectangle of a texture.
type Rect struct {
	X, Y, Width, Height float32
}

// FullRect returns the default rectangle covering the whole texture.
func FullRect() Rect {
	return Rect{X: 0, Y: 0, Width: 1, Height: 1}
}

// IsDefault reports whether r covers the whole texture.
func (r Rect) IsDefault() bool {
	return r == FullRect()
}
