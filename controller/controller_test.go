// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package controller_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/controller"
	"github.com/gogpu/vrshell/controller/controllertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func standalone(head mgl32.Mat4) controller.FrameState {
	return controller.FrameState{Head: head, Mode: vrshell.RenderModeStandalone}
}

func enabled(index int) *controller.Controller {
	c := controller.New(index)
	c.Enabled = true
	return c
}

func TestHandForSlot(t *testing.T) {
	tests := []struct {
		index int
		want  controller.Hand
	}{
		{0, controller.HandRight},
		{1, controller.HandLeft},
	}
	for _, tt := range tests {
		if got := controller.HandForSlot(tt.index); got != tt.want {
			t.Errorf("HandForSlot(%d) = %v, want %v", tt.index, got, tt.want)
		}
		if got := controller.New(tt.index).Index(); got != tt.index {
			t.Errorf("New(%d).Index() = %d", tt.index, got)
		}
	}
}

func buttonsOf(c *controller.Controller) map[controller.Button]controller.ButtonState {
	got := map[controller.Button]controller.ButtonState{}
	for _, b := range c.Buttons() {
		got[b.Button] = b
	}
	return got
}

func pressedLabels(c *controller.Controller) []controller.Button {
	var out []controller.Button
	for _, b := range c.Buttons() {
		if b.Pressed {
			out = append(out, b.Button)
		}
	}
	return out
}

func TestFaceButtonLabels(t *testing.T) {
	tests := []struct {
		name                 string
		hand                 controller.Hand
		raw                  uint32
		primary, secondary   controller.Button
		wantPrimaryPressed   bool
		wantSecondaryPressed bool
	}{
		{"right A", controller.HandRight, controller.RawButtonAX, controller.ButtonA, controller.ButtonB, true, false},
		{"right B", controller.HandRight, controller.RawButtonBY, controller.ButtonA, controller.ButtonB, false, true},
		{"left X", controller.HandLeft, controller.RawButtonAX, controller.ButtonX, controller.ButtonY, true, false},
		{"left Y", controller.HandLeft, controller.RawButtonBY, controller.ButtonX, controller.ButtonY, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := controller.New(0)
			c.Hand = tt.hand
			c.Pressed = tt.raw

			got := buttonsOf(c)
			p, ok := got[tt.primary]
			require.True(t, ok, "primary %s missing", tt.primary)
			s, ok := got[tt.secondary]
			require.True(t, ok, "secondary %s missing", tt.secondary)

			assert.Equal(t, controller.IndexFacePrimary, p.Index)
			assert.Equal(t, controller.IndexFaceSecondary, s.Index)
			assert.Equal(t, tt.wantPrimaryPressed, p.Pressed)
			assert.Equal(t, tt.wantSecondaryPressed, s.Pressed)
			assert.Equal(t, tt.wantPrimaryPressed, p.Touched)
			// One entry per gamepad slot plus the slotless app button.
			assert.Len(t, got, controller.ButtonCount+1)
		})
	}
}

func TestSameRawInputDiffersByHand(t *testing.T) {
	for _, tt := range []struct {
		raw         uint32
		right, left controller.Button
	}{
		{controller.RawButtonAX, controller.ButtonA, controller.ButtonX},
		{controller.RawButtonBY, controller.ButtonB, controller.ButtonY},
	} {
		right := controller.New(0)
		right.Pressed = tt.raw
		left := controller.New(1)
		left.Pressed = tt.raw

		assert.Equal(t, []controller.Button{tt.right}, pressedLabels(right), "raw=%#x right", tt.raw)
		assert.Equal(t, []controller.Button{tt.left}, pressedLabels(left), "raw=%#x left", tt.raw)
	}
}

func TestButtonIndices(t *testing.T) {
	want := []struct {
		button controller.Button
		index  int
	}{
		{controller.ButtonApp, controller.IndexNone},
		{controller.ButtonTouchpad, 0},
		{controller.ButtonTrigger, 1},
		{controller.ButtonGrip, 2},
		{controller.ButtonA, 3},
		{controller.ButtonB, 4},
		{controller.ButtonOthers, 5},
	}
	got := controller.New(0).Buttons()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.button, got[i].Button, "entry %d", i)
		assert.Equal(t, w.index, got[i].Index, "entry %d", i)
	}
}

func TestTriggerAndGrip(t *testing.T) {
	c := controller.New(0)
	c.Trigger = 0.75
	c.Grip = 0.2
	c.Pressed = controller.RawButtonApp

	got := buttonsOf(c)
	assert.True(t, got[controller.ButtonTrigger].Pressed)
	assert.InDelta(t, 0.75, got[controller.ButtonTrigger].Value, eps)
	assert.False(t, got[controller.ButtonGrip].Pressed)
	assert.Zero(t, got[controller.ButtonGrip].Value)
	assert.True(t, got[controller.ButtonApp].Pressed)
	assert.Equal(t, controller.IndexNone, got[controller.ButtonApp].Index)

	c.Pressed = controller.RawButtonGrip | controller.RawButtonTrigger | controller.RawButtonTouchpad
	got = buttonsOf(c)
	assert.True(t, got[controller.ButtonGrip].Pressed)
	assert.InDelta(t, controller.GripHapticIntensity, got[controller.ButtonGrip].Value, eps)
	assert.InDelta(t, 1, got[controller.ButtonTrigger].Value, eps)
	assert.True(t, got[controller.ButtonTouchpad].Pressed)
	assert.False(t, got[controller.ButtonApp].Pressed)
	assert.False(t, got[controller.ButtonOthers].Pressed)
}

func TestNormalizerSkipsDisabled(t *testing.T) {
	rec := controllertest.NewRecorder()
	n := controller.NewNormalizer(rec, controller.DefaultElbowModel())

	n.Update(controller.New(0), standalone(mgl32.Ident4()))
	assert.Empty(t, rec.Calls)
}

func TestNormalizerCapabilities(t *testing.T) {
	rec := controllertest.NewRecorder()
	n := controller.NewNormalizer(rec, controller.DefaultElbowModel())
	c := enabled(0)

	n.Update(c, standalone(mgl32.Ident4()))
	n.Update(c, standalone(mgl32.Ident4()))
	assert.Equal(t, 1, rec.Calls["SetCapabilityFlags"], "unchanged flags sent twice")
	assert.Equal(t, controller.CapabilityOrientation, rec.Slots[0].Caps)

	c.SixDoF = true
	n.Update(c, standalone(mgl32.Ident4()))
	assert.Equal(t, 2, rec.Calls["SetCapabilityFlags"])
	assert.True(t, rec.Slots[0].Caps.Has(controller.CapabilityOrientation|controller.CapabilityPosition))
}

func TestNormalizerAxesAndTouch(t *testing.T) {
	rec := controllertest.NewRecorder()
	n := controller.NewNormalizer(rec, controller.DefaultElbowModel())
	c := enabled(1)

	c.Touching = true
	c.TouchX, c.TouchY = 0.25, 0.75
	n.Update(c, standalone(mgl32.Ident4()))

	slot := rec.Slots[1]
	assert.Equal(t, make([]float32, controller.AxisCount), slot.Axes)
	assert.True(t, slot.Touching)
	assert.InDelta(t, 0.25, slot.TouchX, eps)
	assert.InDelta(t, 0.75, slot.TouchY, eps)
	assert.Zero(t, rec.Calls["EndTouch"])

	c.Touching = false
	n.Update(c, standalone(mgl32.Ident4()))
	assert.False(t, slot.Touching)
	assert.Equal(t, 1, rec.Calls["EndTouch"])
	assert.Equal(t, 1, rec.Calls["SetTouchPosition"])
	assert.Equal(t, 2*(controller.ButtonCount+1), rec.Calls["SetButtonState"])
}

func TestNormalizerTransform(t *testing.T) {
	raw := mgl32.Translate3D(0.3, 1.1, -0.4).Mul4(mgl32.HomogRotate3DX(0.5))
	head := mgl32.Translate3D(0, 1.7, 0)
	offset := mgl32.Vec3{0, 0.2, 0}
	elbow := controller.DefaultElbowModel()
	n := controller.NewNormalizer(nil, elbow)

	tests := []struct {
		name   string
		sixDoF bool
		mode   vrshell.RenderMode
		want   mgl32.Mat4
	}{
		{"6dof standalone", true, vrshell.RenderModeStandalone, mgl32.Translate3D(0, 0.2, 0).Mul4(raw)},
		{"6dof windowed", true, vrshell.RenderModeWindowed, raw},
		{"3dof windowed", false, vrshell.RenderModeWindowed, raw},
		{"3dof standalone", false, vrshell.RenderModeStandalone, elbow.Transform(controller.HandRight, head, raw)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := enabled(0)
			c.SixDoF = tt.sixDoF
			c.Transform = raw
			got := n.Transform(c, controller.FrameState{Head: head, HeadOffset: offset, Mode: tt.mode})
			assert.True(t, tt.want.ApproxEqualThreshold(got, eps), "Transform() = %v, want %v", got, tt.want)
		})
	}
}

func TestElbowModelRest(t *testing.T) {
	e := controller.DefaultElbowModel()
	head := mgl32.Translate3D(0, 1.7, 0)

	tests := []struct {
		hand controller.Hand
		want mgl32.Vec3
	}{
		{controller.HandRight, mgl32.Vec3{0.195, 1.2, -0.245}},
		{controller.HandLeft, mgl32.Vec3{-0.195, 1.2, -0.245}},
	}
	for _, tt := range tests {
		t.Run(tt.hand.String(), func(t *testing.T) {
			m := e.Transform(tt.hand, head, mgl32.Ident4())
			got := m.Col(3).Vec3()
			assert.True(t, tt.want.ApproxEqualThreshold(got, eps), "wrist = %v, want %v", got, tt.want)
		})
	}
}

func TestElbowModelFollowsHeadYaw(t *testing.T) {
	e := controller.DefaultElbowModel()
	turned := mgl32.HomogRotate3DY(mgl32.DegToRad(90))

	// Head turned left: the right shoulder moves to -Z.
	m := e.Transform(controller.HandRight, turned, turned)
	wrist := m.Col(3).Vec3()
	assert.Less(t, wrist.Z(), float32(0))

	// Head pitch does not move the shoulder.
	pitched := mgl32.HomogRotate3DX(mgl32.DegToRad(-60))
	level := e.Transform(controller.HandRight, mgl32.Ident4(), mgl32.Ident4())
	down := e.Transform(controller.HandRight, pitched, mgl32.Ident4())
	assert.True(t, level.ApproxEqualThreshold(down, eps))
}

func TestHeadYawStraightUp(t *testing.T) {
	up := mgl32.HomogRotate3DX(mgl32.DegToRad(90))
	assert.Equal(t, mgl32.QuatIdent(), controller.HeadYaw(up))
}
