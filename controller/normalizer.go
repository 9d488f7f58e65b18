// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
)

// AxisCount is the number of axes reported per controller.
const AxisCount = 2

// FrameState is the per-frame head context the Normalizer needs.
type FrameState struct {
	// Head is the head transform, head offset included.
	Head mgl32.Mat4

	// HeadOffset is the latched standalone head offset, or zero.
	HeadOffset mgl32.Vec3

	// Mode is the current render mode.
	Mode vrshell.RenderMode
}

// Normalizer turns raw controller state into Delegate events.
type Normalizer struct {
	delegate Delegate
	elbow    ElbowModel
	axes     [AxisCount]float32
}

// NewNormalizer creates a normalizer that reports to d and infers 3-DoF arm
// positions with elbow.
func NewNormalizer(d Delegate, elbow ElbowModel) *Normalizer {
	if d == nil {
		d = NopDelegate{}
	}
	return &Normalizer{delegate: d, elbow: elbow}
}

// Update reports the state of c for one frame. Disabled controllers are
// skipped.
//
// Capability flags are sent only when they change. Axes are always zero.
// Touch position is sent while touched; otherwise EndTouch is sent.
func (n *Normalizer) Update(c *Controller, f FrameState) {
	if !c.Enabled {
		return
	}
	index := c.Index()

	if caps := c.Capabilities(); !c.capsSent || caps != c.caps {
		c.caps = caps
		c.capsSent = true
		n.delegate.SetCapabilityFlags(index, caps)
	}

	for _, b := range c.Buttons() {
		n.delegate.SetButtonState(index, b.Button, b.Index, b.Pressed, b.Touched, b.Value)
	}

	n.axes = [AxisCount]float32{}
	n.delegate.SetAxes(index, n.axes[:])

	if c.Touching {
		n.delegate.SetTouchPosition(index, c.TouchX, c.TouchY)
	} else {
		n.delegate.EndTouch(index)
	}

	n.delegate.SetTransform(index, n.Transform(c, f))
}

// Transform returns the final transform of c. Orientation-only controllers in
// standalone mode go through the elbow model; all others use the raw
// transform, shifted by the head offset in standalone mode.
func (n *Normalizer) Transform(c *Controller, f FrameState) mgl32.Mat4 {
	if f.Mode != vrshell.RenderModeStandalone {
		return c.Transform
	}
	if !c.SixDoF {
		return n.elbow.Transform(c.Hand, f.Head, c.Transform)
	}
	return mgl32.Translate3D(f.HeadOffset.Elem()).Mul4(c.Transform)
}
