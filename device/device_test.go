// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/controller"
	"github.com/gogpu/vrshell/controller/controllertest"
	"github.com/gogpu/vrshell/xrmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

type fakeDisplay struct {
	name       string
	caps       Capability
	fov        [vrshell.EyeCount][4]float32
	offset     [vrshell.EyeCount]float32
	w, h       uint32
	near, far  float32
	completed  int
	fovUpdates int
}

func (f *fakeDisplay) SetDeviceName(name string)           { f.name = name }
func (f *fakeDisplay) SetCapabilityFlags(flags Capability) { f.caps = flags }
func (f *fakeDisplay) SetEyeResolution(w, h uint32)        { f.w, f.h = w, h }
func (f *fakeDisplay) SetClipPlanes(near, far float32)     { f.near, f.far = near, far }
func (f *fakeDisplay) CompleteEnumeration()                { f.completed++ }

func (f *fakeDisplay) SetFieldOfView(eye vrshell.Eye, l, r, u, d float32) {
	f.fov[eye] = [4]float32{l, r, u, d}
	f.fovUpdates++
}

func (f *fakeDisplay) SetEyeOffset(eye vrshell.Eye, x, _, _ float32) { f.offset[eye] = x }

type cameraSet struct {
	cams map[vrshell.Eye]*EyeCamera
}

func (s *cameraSet) factory(eye vrshell.Eye) Camera {
	c := NewEyeCamera(eye)
	s.cams[eye] = c
	return c
}

func newTestDevice(t *testing.T, opts ...Option) (*Device, *cameraSet, *controllertest.Recorder) {
	t.Helper()
	cams := &cameraSet{cams: make(map[vrshell.Eye]*EyeCamera)}
	rec := controllertest.NewRecorder()
	d := New(append([]Option{WithCameraFactory(cams.factory), WithControllerDelegate(rec)}, opts...)...)
	require.NoError(t, d.Initialize())
	return d, cams, rec
}

func trackedSample(frame uint64, pos mgl32.Vec3) vrshell.TrackingSample {
	return vrshell.NewTrackingSample(frame, 0, vrshell.Pose{Position: pos, Orientation: mgl32.QuatIdent()}, 0.064, mgl32.Ident4())
}

func TestStateMachine(t *testing.T) {
	d := New()
	assert.Equal(t, StateUninitialized, d.State())
	assert.False(t, d.IsInitialized())

	if err := d.StartFrame(trackedSample(1, mgl32.Vec3{})); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("StartFrame() before Initialize = %v, want ErrNotInitialized", err)
	}

	// Pause is ignored before Initialize.
	d.Pause()
	assert.Equal(t, StateUninitialized, d.State())

	require.NoError(t, d.Initialize())
	assert.Equal(t, StateRunning, d.State())
	require.NoError(t, d.Initialize())

	d.Pause()
	assert.True(t, d.IsPaused())
	assert.True(t, d.IsInitialized())
	d.Resume()
	assert.Equal(t, StateRunning, d.State())

	d.Shutdown()
	assert.Equal(t, StateShutDown, d.State())
	assert.False(t, d.IsInitialized())
	d.Shutdown()
}

func TestShutdownWithoutInitialize(t *testing.T) {
	d := New()
	d.Shutdown()
	assert.Equal(t, StateShutDown, d.State())
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Far = cfg.Near
	d := New(WithConfig(cfg))
	assert.Error(t, d.Initialize())
	assert.Equal(t, StateUninitialized, d.State())
}

func TestInitializeCamerasAndControllers(t *testing.T) {
	d, cams, rec := newTestDevice(t)
	require.Len(t, cams.cams, vrshell.EyeCount)

	want := xrmath.Projection(xrmath.SymmetricFieldOfView(90), 0.1, 100)
	for _, eye := range vrshell.Eyes {
		assert.True(t, want.ApproxEqualThreshold(cams.cams[eye].Projection(), eps))
	}
	assert.InDelta(t, -0.032, cams.cams[vrshell.EyeLeft].EyeTransform().At(0, 3), eps)
	assert.InDelta(t, 0.032, cams.cams[vrshell.EyeRight].EyeTransform().At(0, 3), eps)
	assert.Same(t, cams.cams[vrshell.EyeLeft], d.Camera(vrshell.EyeLeft))

	assert.Equal(t, controller.MaxCount, rec.Calls["CreateController"])
	assert.Equal(t, controller.HandRight, rec.Slots[0].Hand)
	assert.Equal(t, controller.HandLeft, rec.Slots[1].Hand)
	assert.Equal(t, controller.ButtonCount, rec.Slots[0].ButtonCount)
	assert.Equal(t, controller.HapticCount, rec.Slots[1].HapticCount)
}

func TestHeadOffsetLatchedOnce(t *testing.T) {
	d, cams, _ := newTestDevice(t)

	require.NoError(t, d.StartFrame(trackedSample(1, mgl32.Vec3{0.4, 0.2, -0.6})))
	offset, ok := d.HeadOffset()
	require.True(t, ok)
	assert.True(t, offset.ApproxEqualThreshold(mgl32.Vec3{-0.4, 1.5, 0.6}, eps), "offset = %v", offset)

	require.NoError(t, d.StartFrame(trackedSample(2, mgl32.Vec3{0.1, 0.9, -0.3})))
	again, _ := d.HeadOffset()
	assert.Equal(t, offset, again, "second sample changed the latched offset")

	head := d.HeadTransform()
	assert.InDelta(t, -0.3, head.At(0, 3), eps)
	assert.InDelta(t, 2.4, head.At(1, 3), eps)
	assert.InDelta(t, 0.3, head.At(2, 3), eps)
	for _, eye := range vrshell.Eyes {
		assert.Equal(t, head, cams.cams[eye].HeadTransform())
	}
	assert.True(t, d.Sample().HeadPose.Position.ApproxEqualThreshold(mgl32.Vec3{-0.3, 2.4, 0.3}, eps))
}

func TestSampleKeepsDeliveredEyes(t *testing.T) {
	d, _, _ := newTestDevice(t)

	proj := mgl32.Frustum(-0.12, 0.05, -0.08, 0.1, 0.1, 100)
	in := vrshell.NewTrackingSample(1, 0, vrshell.Pose{Position: mgl32.Vec3{0.4, 0.2, -0.6}, Orientation: mgl32.QuatIdent()}, 0.07, proj)
	in.Eyes[vrshell.EyeRight].Projection = proj.Transpose()
	require.NoError(t, d.StartFrame(in))

	offset, _ := d.HeadOffset()
	back := mgl32.Translate3D(-offset.X(), -offset.Y(), -offset.Z())
	out := d.Sample()
	for _, eye := range vrshell.Eyes {
		assert.Equal(t, in.Eyes[eye].Projection, out.Eyes[eye].Projection)
		assert.True(t, in.Eyes[eye].View.Mul4(back).ApproxEqualThreshold(out.Eyes[eye].View, eps))
	}
	assert.True(t, in.CenterEyeView.Mul4(back).ApproxEqualThreshold(out.CenterEyeView, eps))
	assert.True(t, d.HeadTransform().Inv().ApproxEqualThreshold(out.CenterEyeView, eps))
}

func TestHeadOffsetWaitsForValidPosition(t *testing.T) {
	d, _, _ := newTestDevice(t)

	s := trackedSample(1, mgl32.Vec3{0, 5, 0})
	s.Status = vrshell.TrackingOrientationValid
	require.NoError(t, d.StartFrame(s))
	_, ok := d.HeadOffset()
	assert.False(t, ok)

	require.NoError(t, d.StartFrame(trackedSample(2, mgl32.Vec3{0, 0.7, 0})))
	offset, ok := d.HeadOffset()
	require.True(t, ok)
	assert.InDelta(t, 1.0, offset.Y(), eps)
}

func TestWindowedModeHasNoOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = vrshell.RenderModeWindowed
	d, _, _ := newTestDevice(t, WithConfig(cfg))

	require.NoError(t, d.StartFrame(trackedSample(1, mgl32.Vec3{1, 2, 3})))
	_, ok := d.HeadOffset()
	assert.False(t, ok)
	assert.True(t, mgl32.Translate3D(1, 2, 3).ApproxEqualThreshold(d.HeadTransform(), eps))
}

func TestUpdateControllerConnectedTransitions(t *testing.T) {
	d, _, rec := newTestDevice(t)
	rec.Reset()

	require.NoError(t, d.UpdateControllerConnected(1, true))
	require.NoError(t, d.UpdateControllerConnected(1, true))

	assert.Equal(t, 1, rec.Calls["SetEnabled"])
	assert.Equal(t, 1, rec.Calls["SetVisible"])
	assert.Equal(t, 1, rec.Calls["SetLeftHanded"])
	assert.True(t, rec.Slots[1].LeftHanded)

	require.NoError(t, d.UpdateControllerConnected(1, false))
	require.NoError(t, d.UpdateControllerConnected(1, false))
	assert.Equal(t, 2, rec.Calls["SetEnabled"])
	assert.Equal(t, 2, rec.Calls["SetVisible"])
	assert.Equal(t, 2, rec.Calls["SetLeftHanded"])
	assert.True(t, rec.Slots[1].LeftHanded)
	assert.False(t, rec.Slots[1].Enabled)
}

func TestControllerInvalidIndex(t *testing.T) {
	d, _, _ := newTestDevice(t)
	for _, index := range []int{-1, controller.MaxCount} {
		if err := d.UpdateControllerConnected(index, true); !errors.Is(err, vrshell.ErrInvalidIndex) {
			t.Errorf("UpdateControllerConnected(%d) = %v, want ErrInvalidIndex", index, err)
		}
		if err := d.UpdateControllerPose(index, mgl32.Ident4(), true); !errors.Is(err, vrshell.ErrInvalidIndex) {
			t.Errorf("UpdateControllerPose(%d) = %v, want ErrInvalidIndex", index, err)
		}
		if err := d.UpdateControllerButtons(index, 0, 0, 0, 0); !errors.Is(err, vrshell.ErrInvalidIndex) {
			t.Errorf("UpdateControllerButtons(%d) = %v, want ErrInvalidIndex", index, err)
		}
		if err := d.UpdateControllerTouch(index, false, 0, 0); !errors.Is(err, vrshell.ErrInvalidIndex) {
			t.Errorf("UpdateControllerTouch(%d) = %v, want ErrInvalidIndex", index, err)
		}
	}
}

func TestControllerBeforeInitialize(t *testing.T) {
	d := New()
	if err := d.UpdateControllerConnected(0, true); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("UpdateControllerConnected() = %v, want ErrNotInitialized", err)
	}
}

func TestStartFrameNormalizesControllers(t *testing.T) {
	d, _, rec := newTestDevice(t)
	require.NoError(t, d.UpdateControllerConnected(0, true))
	require.NoError(t, d.UpdateControllerButtons(0, controller.RawButtonAX, 0, 0, 0))
	require.NoError(t, d.UpdateControllerPose(0, mgl32.HomogRotate3DY(0.2), false))
	rec.Reset()

	require.NoError(t, d.StartFrame(trackedSample(1, mgl32.Vec3{0, 0, 0})))

	// Only the connected slot is reported.
	assert.Equal(t, 1, rec.Calls["SetTransform"])
	assert.True(t, rec.Slots[0].Buttons[controller.ButtonA].Pressed)

	want := controller.DefaultElbowModel().Transform(controller.HandRight, d.HeadTransform(), mgl32.HomogRotate3DY(0.2))
	assert.True(t, want.ApproxEqualThreshold(rec.Slots[0].Transform, eps))
}

func TestParameterUpdatesApplyImmediately(t *testing.T) {
	display := &fakeDisplay{}
	d, cams, _ := newTestDevice(t, WithDisplayInfo(display))

	assert.Equal(t, "vrshell", display.name)
	assert.Equal(t, 1, display.completed)
	assert.Equal(t, uint32(1440), display.w)
	assert.Equal(t, [4]float32{45, 45, 45, 45}, display.fov[vrshell.EyeLeft])
	assert.True(t, display.caps&CapabilityPosition != 0)

	require.NoError(t, d.UpdateIPD(0.07))
	assert.InDelta(t, 0.035, cams.cams[vrshell.EyeRight].EyeTransform().At(0, 3), eps)
	assert.InDelta(t, -0.035, display.offset[vrshell.EyeLeft], eps)

	require.NoError(t, d.UpdateFOV(100))
	want := xrmath.Projection(xrmath.SymmetricFieldOfView(100), 0.1, 100)
	assert.True(t, want.ApproxEqualThreshold(cams.cams[vrshell.EyeLeft].Projection(), eps))
	assert.Equal(t, [4]float32{50, 50, 50, 50}, display.fov[vrshell.EyeRight])

	require.NoError(t, d.SetClipPlanes(0.05, 500))
	want = xrmath.Projection(xrmath.SymmetricFieldOfView(100), 0.05, 500)
	assert.True(t, want.ApproxEqualThreshold(cams.cams[vrshell.EyeRight].Projection(), eps))
	assert.Equal(t, float32(500), display.far)

	assert.Error(t, d.SetClipPlanes(1, 0.5))
	assert.Error(t, d.UpdateFOV(0))
	assert.Error(t, d.UpdateIPD(-1))
	assert.Equal(t, 1, display.completed)
}

func TestEyeCameraView(t *testing.T) {
	c := NewEyeCamera(vrshell.EyeLeft)
	c.SetHeadTransform(mgl32.Translate3D(0, 1.7, 0))
	c.SetEyeTransform(eyeTransform(vrshell.EyeLeft, 0.064))

	want := mgl32.Translate3D(0.032, -1.7, 0)
	assert.True(t, want.ApproxEqualThreshold(c.View(), eps))
}

func TestSetRenderMode(t *testing.T) {
	d := New()
	assert.Equal(t, vrshell.RenderModeStandalone, d.RenderMode())
	d.SetRenderMode(vrshell.RenderModeWindowed)
	assert.Equal(t, vrshell.RenderModeWindowed, d.RenderMode())
	assert.False(t, d.Capabilities()&CapabilityStageParameters != 0)
}
