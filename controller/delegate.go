// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package controller

import "github.com/go-gl/mathgl/mgl32"

// Delegate receives normalized controller events. Every call carries the
// controller slot index.
type Delegate interface {
	CreateController(index int, hand Hand)
	SetButtonCount(index, count int)
	SetHapticCount(index, count int)
	SetCapabilityFlags(index int, flags Capability)
	SetButtonState(index int, button Button, buttonIndex int, pressed, touched bool, value float32)
	SetAxes(index int, axes []float32)
	SetTouchPosition(index int, x, y float32)
	EndTouch(index int)
	SetTransform(index int, transform mgl32.Mat4)
	SetEnabled(index int, enabled bool)
	SetVisible(index int, visible bool)
	SetLeftHanded(index int, leftHanded bool)
}

// NopDelegate ignores every event. Embed it to implement part of Delegate.
type NopDelegate struct{}

func (NopDelegate) CreateController(int, Hand)                           {}
func (NopDelegate) SetButtonCount(int, int)                              {}
func (NopDelegate) SetHapticCount(int, int)                              {}
func (NopDelegate) SetCapabilityFlags(int, Capability)                   {}
func (NopDelegate) SetButtonState(int, Button, int, bool, bool, float32) {}
func (NopDelegate) SetAxes(int, []float32)                               {}
func (NopDelegate) SetTouchPosition(int, float32, float32)               {}
func (NopDelegate) EndTouch(int)                                         {}
func (NopDelegate) SetTransform(int, mgl32.Mat4)                         {}
func (NopDelegate) SetEnabled(int, bool)                                 {}
func (NopDelegate) SetVisible(int, bool)                                 {}
func (NopDelegate) SetLeftHanded(int, bool)                              {}

// Ensure NopDelegate implements Delegate.
var _ Delegate = NopDelegate{}
