// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package session runs the per-frame loop of one VR session.
//
// A Session ties a device to a compositor: each frame the tracking sample is
// integrated by the device, every layer is updated against the resulting
// sample, and the assembled submission goes to the platform backend.
//
//	s := session.New(dev, comp, platform)
//	if err := s.Start(); err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	quad := layer.NewQuad(layer.NewSurface(1, 0.5, 512, 256))
//	if err := s.AddLayer(1, quad); err != nil {
//	    return err
//	}
//	sub, ok, err := s.Frame(ctx, sample)
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/compositor"
	"github.com/gogpu/vrshell/device"
	"github.com/gogpu/vrshell/layer"
	"github.com/gogpu/vrshell/swapchain"
)

// ErrNotStarted is returned by operations that need Start first.
var ErrNotStarted = errors.New("session: not started")

// Session is one VR session.
//
// Session is NOT safe for concurrent use; it lives on the render thread.
type Session struct {
	device     *device.Device
	compositor *compositor.Compositor
	platform   swapchain.Platform
	registry   *layer.Registry

	format        gputypes.TextureFormat
	useProjection bool
	projection    *layer.Projection

	started bool
	frames  uint64
}

// New creates a session over dev and comp. Layer swap-chains are allocated on
// platform.
func New(dev *device.Device, comp *compositor.Compositor, platform swapchain.Platform, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = layer.NewRegistry()
	}
	return &Session{
		device:        dev,
		compositor:    comp,
		platform:      platform,
		registry:      o.registry,
		format:        o.format,
		useProjection: o.projection,
	}
}

// Device returns the session's device.
func (s *Session) Device() *device.Device { return s.device }

// Compositor returns the session's compositor.
func (s *Session) Compositor() *compositor.Compositor { return s.compositor }

// Registry returns the registry that owns the session's layers.
func (s *Session) Registry() *layer.Registry { return s.registry }

// Projection returns the projection layer, or nil if there is none.
func (s *Session) Projection() *layer.Projection { return s.projection }

// Frames returns the number of frames submitted.
func (s *Session) Frames() uint64 { return s.frames }

// Start initializes the device and the compositor and creates the projection
// layer at the configured eye resolution. Calling Start again is a no-op.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	if err := s.device.Initialize(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := s.compositor.Init(s.platform); err != nil {
		s.device.Shutdown()
		return fmt.Errorf("session: %w", err)
	}

	if s.useProjection {
		cfg := s.device.Config()
		p := layer.NewProjection(cfg.EyeWidth, cfg.EyeHeight, s.format)
		if err := p.Init(s.initContext()); err != nil {
			s.compositor.Close()
			s.device.Shutdown()
			return fmt.Errorf("session: %w", err)
		}
		s.projection = p
		s.compositor.SetProjection(p)
	}

	s.started = true
	vrshell.Logger().Info("session: started", "projection", s.projection != nil)
	return nil
}

func (s *Session) initContext() layer.InitContext {
	return layer.InitContext{Platform: s.platform, Registry: s.registry}
}

// AddLayer initializes l, hands it to the registry and places it at z-order z.
// On failure l is destroyed and nothing is registered.
func (s *Session) AddLayer(z int, l layer.Layer) error {
	if !s.started {
		return ErrNotStarted
	}
	if err := l.Init(s.initContext()); err != nil {
		l.Destroy()
		return fmt.Errorf("session: %w", err)
	}
	if err := s.registry.Add(l); err != nil {
		l.Destroy()
		return fmt.Errorf("session: %w", err)
	}
	if err := s.compositor.AddLayer(z, l); err != nil {
		s.registry.Remove(l.ID())
		return fmt.Errorf("session: %w", err)
	}
	vrshell.Logger().Debug("session: layer added", "z", z, "id", l.ID(), "kind", l.Kind().String())
	return nil
}

// RemoveLayer takes the layer at z out of the stack and destroys it. Equirect
// layers sampling it fall back to the clear texture from the next frame.
func (s *Session) RemoveLayer(z int) error {
	l, ok := s.compositor.Layer(z)
	if !ok {
		return fmt.Errorf("session: %w: z=%d", compositor.ErrUnknownLayer, z)
	}
	if err := s.compositor.RemoveLayer(z); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if !s.registry.Remove(l.ID()) {
		l.Destroy()
	}
	return nil
}

// Pause stops tracking updates and submissions.
func (s *Session) Pause() { s.device.Pause() }

// Resume restarts tracking updates and submissions.
func (s *Session) Resume() { s.device.Resume() }

// Frame runs one frame for sample: the device integrates it, every layer is
// updated against the device's sample, and the submission is handed to the
// backend. ok is false when the session is paused and nothing was submitted.
func (s *Session) Frame(ctx context.Context, sample vrshell.TrackingSample) (sub compositor.Submission, ok bool, err error) {
	if !s.started {
		return compositor.Submission{}, false, ErrNotStarted
	}
	if s.device.IsPaused() {
		return compositor.Submission{}, false, nil
	}
	if err := s.device.StartFrame(sample); err != nil {
		return compositor.Submission{}, false, fmt.Errorf("session: %w", err)
	}

	frame := s.device.Sample()
	s.compositor.Update(frame)
	sub, err = s.compositor.Submit(ctx, frame)
	if err != nil {
		return sub, false, fmt.Errorf("session: %w", err)
	}
	s.frames++
	return sub, true, nil
}

// Close empties the stack, destroys every layer in the registry, releases the
// compositor and shuts the device down. It is safe to call more than once.
func (s *Session) Close() {
	for _, z := range s.compositor.Layers() {
		_ = s.compositor.RemoveLayer(z)
	}
	s.compositor.SetProjection(nil)
	s.registry.Clear()
	if s.projection != nil {
		s.projection.Destroy()
		s.projection = nil
	}
	s.compositor.Close()
	s.device.Shutdown()
	if s.started {
		s.started = false
		vrshell.Logger().Info("session: closed", "frames", s.frames)
	}
}
