// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/controller"
	"github.com/gogpu/vrshell/xrmath"
)

// ErrNotInitialized is returned by operations that need Initialize first.
var ErrNotInitialized = errors.New("device: not initialized")

// State is the device lifecycle state.
type State int

const (
	// StateUninitialized is the state of a new Device.
	StateUninitialized State = iota
	// StateRunning is entered by Initialize and Resume.
	StateRunning
	// StatePaused is entered by Pause.
	StatePaused
	// StateShutDown is entered by Shutdown.
	StateShutDown
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateShutDown:
		return "shut down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Device is the headset state of one VR session: eye cameras and their
// parameters, the head transform with its standalone offset, and the
// controller slots.
//
// Device is NOT safe for concurrent use. Input events from other threads
// must be serialized by the host onto the render thread.
type Device struct {
	state State
	cfg   Config

	newCamera  CameraFactory
	cameras    [vrshell.EyeCount]Camera
	display    DisplayInfo
	delegate   controller.Delegate
	normalizer *controller.Normalizer

	controllers [controller.MaxCount]*controller.Controller

	head          mgl32.Mat4
	headOffset    mgl32.Vec3
	offsetLatched bool
	sample        vrshell.TrackingSample
}

// New creates an uninitialized device.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{
		cfg:        o.config,
		newCamera:  o.cameras,
		display:    o.display,
		delegate:   o.delegate,
		normalizer: controller.NewNormalizer(o.delegate, o.elbow),
		head:       mgl32.Ident4(),
	}
}

// State returns the lifecycle state.
func (d *Device) State() State { return d.state }

// IsInitialized reports whether the device is running or paused.
func (d *Device) IsInitialized() bool {
	return d.state == StateRunning || d.state == StatePaused
}

// IsPaused reports whether tracking updates should be skipped.
func (d *Device) IsPaused() bool { return d.state == StatePaused }

// Config returns the current parameters.
func (d *Device) Config() Config { return d.cfg }

// Initialize creates the eye cameras with the configured projection, creates
// the controller slots on the delegate, and registers the display info
// collaborator if one was given. The device is running afterwards.
//
// Calling Initialize on an initialized device is a no-op.
func (d *Device) Initialize() error {
	if d.IsInitialized() {
		return nil
	}
	if err := d.cfg.Validate(); err != nil {
		return err
	}

	proj := d.Projection()
	for _, eye := range vrshell.Eyes {
		cam := d.newCamera(eye)
		cam.SetPerspective(proj)
		cam.SetEyeTransform(eyeTransform(eye, d.cfg.IPD))
		cam.SetHeadTransform(d.head)
		d.cameras[eye] = cam
	}

	for i := range d.controllers {
		c := controller.New(i)
		d.controllers[i] = c
		d.delegate.CreateController(i, c.Hand)
		d.delegate.SetButtonCount(i, controller.ButtonCount)
		d.delegate.SetHapticCount(i, controller.HapticCount)
	}

	d.state = StateRunning
	if d.display != nil {
		d.RegisterDisplayInfo(d.display)
	}
	vrshell.Logger().Info("device: initialized",
		"name", d.cfg.DeviceName, "mode", d.cfg.Mode.String(),
		"ipd", d.cfg.IPD, "fov", d.cfg.FieldOfView)
	return nil
}

// Pause stops tracking updates. Nothing is released.
func (d *Device) Pause() {
	if d.state == StateRunning {
		d.state = StatePaused
		vrshell.Logger().Debug("device: paused")
	}
}

// Resume restarts tracking updates.
func (d *Device) Resume() {
	if d.state == StatePaused {
		d.state = StateRunning
		vrshell.Logger().Debug("device: resumed")
	}
}

// Shutdown ends the session. It is safe on a device that was never
// initialized.
func (d *Device) Shutdown() {
	if d.state == StateShutDown {
		return
	}
	wasInitialized := d.IsInitialized()
	d.state = StateShutDown
	if wasInitialized {
		vrshell.Logger().Info("device: shut down")
	}
}

// Projection returns the eye projection for the configured field of view and
// clip planes.
func (d *Device) Projection() mgl32.Mat4 {
	return xrmath.Projection(xrmath.SymmetricFieldOfView(d.cfg.FieldOfView), d.cfg.Near, d.cfg.Far)
}

// Camera returns the camera of eye, or nil before Initialize.
func (d *Device) Camera(eye vrshell.Eye) Camera {
	if !eye.Valid() {
		return nil
	}
	return d.cameras[eye]
}

// HeadTransform returns the head transform of the last StartFrame.
func (d *Device) HeadTransform() mgl32.Mat4 { return d.head }

// HeadOffset returns the latched standalone head offset and whether it has
// been latched.
func (d *Device) HeadOffset() (mgl32.Vec3, bool) { return d.headOffset, d.offsetLatched }

// Sample returns the tracking sample of the last StartFrame: the delivered
// sample with the head offset applied to the head pose and every view.
// Projections are the ones the platform delivered. Layers are updated
// against it.
func (d *Device) Sample() vrshell.TrackingSample { return d.sample }

// StartFrame integrates a tracking sample: it computes the head transform,
// applies the standalone head offset, pushes the head to both cameras, and
// runs controller normalization.
//
// The head offset is latched once, from the first sample with a valid
// position: (0, StandingHeight, 0) - position, which lifts the viewer to the
// standing height and recenters it horizontally. Later samples never change
// it.
func (d *Device) StartFrame(sample vrshell.TrackingSample) error {
	if !d.IsInitialized() {
		return ErrNotInitialized
	}

	standalone := d.cfg.Mode == vrshell.RenderModeStandalone
	if standalone && !d.offsetLatched && sample.Status.Has(vrshell.TrackingPositionValid) {
		d.headOffset = mgl32.Vec3{0, d.cfg.StandingHeight, 0}.Sub(sample.HeadPose.Position)
		d.offsetLatched = true
		vrshell.Logger().Info("device: head offset latched",
			"x", d.headOffset.X(), "y", d.headOffset.Y(), "z", d.headOffset.Z())
	}

	var offset mgl32.Vec3
	if standalone {
		offset = d.headOffset
	}
	d.sample = withHeadOffset(sample, offset)
	d.head = d.sample.HeadPose.Mat4()
	for _, cam := range d.cameras {
		cam.SetHeadTransform(d.head)
	}

	state := controller.FrameState{Head: d.head, HeadOffset: offset, Mode: d.cfg.Mode}
	for _, c := range d.controllers {
		d.normalizer.Update(c, state)
	}
	return nil
}

// withHeadOffset moves the head of s by offset. Views are world-to-eye, so
// they pick up the inverse translation on the right.
func withHeadOffset(s vrshell.TrackingSample, offset mgl32.Vec3) vrshell.TrackingSample {
	if offset == (mgl32.Vec3{}) {
		return s
	}
	back := mgl32.Translate3D(offset.Mul(-1).Elem())
	s.HeadPose.Position = s.HeadPose.Position.Add(offset)
	s.CenterEyeView = s.CenterEyeView.Mul4(back)
	for i := range s.Eyes {
		s.Eyes[i].View = s.Eyes[i].View.Mul4(back)
	}
	return s
}

// UpdateIPD sets the inter-pupillary distance in meters and applies it to the
// eye cameras and the display info right away.
func (d *Device) UpdateIPD(ipd float32) error {
	if ipd < 0 {
		return fmt.Errorf("device: negative IPD %v", ipd)
	}
	d.cfg.IPD = ipd
	for eye, cam := range d.cameras {
		if cam != nil {
			cam.SetEyeTransform(eyeTransform(vrshell.Eye(eye), ipd))
		}
	}
	if d.display != nil {
		for _, eye := range vrshell.Eyes {
			d.display.SetEyeOffset(eye, eyeOffset(eye, ipd), 0, 0)
		}
	}
	return nil
}

// UpdateFOV sets the full field of view in degrees and recomputes the
// projection right away.
func (d *Device) UpdateFOV(degrees float32) error {
	if degrees <= 0 || degrees >= 180 {
		return fmt.Errorf("device: field of view %v out of (0, 180)", degrees)
	}
	d.cfg.FieldOfView = degrees
	d.applyProjection()
	if d.display != nil {
		fov := xrmath.SymmetricFieldOfView(degrees)
		for _, eye := range vrshell.Eyes {
			d.display.SetFieldOfView(eye, fov.Left, fov.Right, fov.Up, fov.Down)
		}
	}
	return nil
}

// SetClipPlanes sets the near and far planes and recomputes the projection
// right away.
func (d *Device) SetClipPlanes(near, far float32) error {
	if near <= 0 || far <= near {
		return fmt.Errorf("device: clip planes near=%v far=%v", near, far)
	}
	d.cfg.Near, d.cfg.Far = near, far
	d.applyProjection()
	if d.display != nil {
		d.display.SetClipPlanes(near, far)
	}
	return nil
}

func (d *Device) applyProjection() {
	proj := d.Projection()
	for _, cam := range d.cameras {
		if cam != nil {
			cam.SetPerspective(proj)
		}
	}
}

// SetRenderMode switches between standalone and windowed positioning.
// A latched head offset is kept.
func (d *Device) SetRenderMode(mode vrshell.RenderMode) {
	if d.cfg.Mode == mode {
		return
	}
	d.cfg.Mode = mode
	vrshell.Logger().Info("device: render mode", "mode", mode.String())
}

// RenderMode returns the current render mode.
func (d *Device) RenderMode() vrshell.RenderMode { return d.cfg.Mode }

// Capabilities returns the headset capability flags.
func (d *Device) Capabilities() Capability {
	caps := CapabilityOrientation | CapabilityPosition | CapabilityPresent
	if d.cfg.Mode == vrshell.RenderModeStandalone {
		caps |= CapabilityStageParameters
	}
	return caps
}

// RegisterDisplayInfo describes the headset to info in one pass and keeps
// info for later parameter changes.
func (d *Device) RegisterDisplayInfo(info DisplayInfo) {
	if info == nil {
		return
	}
	d.display = info
	info.SetDeviceName(d.cfg.DeviceName)
	info.SetCapabilityFlags(d.Capabilities())
	fov := xrmath.SymmetricFieldOfView(d.cfg.FieldOfView)
	for _, eye := range vrshell.Eyes {
		info.SetFieldOfView(eye, fov.Left, fov.Right, fov.Up, fov.Down)
		info.SetEyeOffset(eye, eyeOffset(eye, d.cfg.IPD), 0, 0)
	}
	info.SetEyeResolution(d.cfg.EyeWidth, d.cfg.EyeHeight)
	info.SetClipPlanes(d.cfg.Near, d.cfg.Far)
	info.CompleteEnumeration()
}
