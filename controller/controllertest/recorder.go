// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package controllertest provides a recording controller.Delegate for tests.
package controllertest

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell/controller"
)

// ButtonEvent is one recorded SetButtonState call.
type ButtonEvent struct {
	Button  controller.Button
	Index   int
	Pressed bool
	Touched bool
	Value   float32
}

// Slot is the last state reported for one controller index.
type Slot struct {
	Created     bool
	Hand        controller.Hand
	ButtonCount int
	HapticCount int
	Caps        controller.Capability
	Buttons     map[controller.Button]ButtonEvent
	Axes        []float32
	Touching    bool
	TouchX      float32
	TouchY      float32
	Transform   mgl32.Mat4
	Enabled     bool
	Visible     bool
	LeftHanded  bool
}

// Recorder records every Delegate call. Calls counts calls per method name.
//
// Recorder is NOT safe for concurrent use.
type Recorder struct {
	Slots map[int]*Slot
	Calls map[string]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Slots: make(map[int]*Slot), Calls: make(map[string]int)}
}

// Reset clears the call counts and keeps the slot state.
func (r *Recorder) Reset() {
	r.Calls = make(map[string]int)
}

func (r *Recorder) slot(index int, method string) *Slot {
	r.Calls[method]++
	s, ok := r.Slots[index]
	if !ok {
		s = &Slot{Buttons: make(map[controller.Button]ButtonEvent)}
		r.Slots[index] = s
	}
	return s
}

func (r *Recorder) CreateController(index int, hand controller.Hand) {
	s := r.slot(index, "CreateController")
	s.Created, s.Hand = true, hand
}

func (r *Recorder) SetButtonCount(index, count int) {
	r.slot(index, "SetButtonCount").ButtonCount = count
}

func (r *Recorder) SetHapticCount(index, count int) {
	r.slot(index, "SetHapticCount").HapticCount = count
}

func (r *Recorder) SetCapabilityFlags(index int, flags controller.Capability) {
	r.slot(index, "SetCapabilityFlags").Caps = flags
}

func (r *Recorder) SetButtonState(index int, button controller.Button, buttonIndex int, pressed, touched bool, value float32) {
	r.slot(index, "SetButtonState").Buttons[button] = ButtonEvent{
		Button: button, Index: buttonIndex, Pressed: pressed, Touched: touched, Value: value,
	}
}

func (r *Recorder) SetAxes(index int, axes []float32) {
	r.slot(index, "SetAxes").Axes = append([]float32(nil), axes...)
}

func (r *Recorder) SetTouchPosition(index int, x, y float32) {
	s := r.slot(index, "SetTouchPosition")
	s.Touching, s.TouchX, s.TouchY = true, x, y
}

func (r *Recorder) EndTouch(index int) {
	r.slot(index, "EndTouch").Touching = false
}

func (r *Recorder) SetTransform(index int, transform mgl32.Mat4) {
	r.slot(index, "SetTransform").Transform = transform
}

func (r *Recorder) SetEnabled(index int, enabled bool) {
	r.slot(index, "SetEnabled").Enabled = enabled
}

func (r *Recorder) SetVisible(index int, visible bool) {
	r.slot(index, "SetVisible").Visible = visible
}

func (r *Recorder) SetLeftHanded(index int, leftHanded bool) {
	r.slot(index, "SetLeftHanded").LeftHanded = leftHanded
}

// Ensure Recorder implements controller.Delegate.
var _ controller.Delegate = (*Recorder)(nil)
