// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package controller

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxCount is the number of controller slots.
const MaxCount = 2

// Button and haptic counts reported for every controller.
const (
	ButtonCount = 6
	HapticCount = 0
)

// Hand is the hand a controller is held in.
type Hand int

const (
	// HandRight is the right hand.
	HandRight Hand = iota
	// HandLeft is the left hand.
	HandLeft
)

// String returns the hand name.
func (h Hand) String() string {
	switch h {
	case HandRight:
		return "right"
	case HandLeft:
		return "left"
	default:
		return fmt.Sprintf("Hand(%d)", int(h))
	}
}

// HandForSlot returns the fixed hand of a controller slot: slot 0 is the
// right hand, every other slot the left.
func HandForSlot(index int) Hand {
	if index == 0 {
		return HandRight
	}
	return HandLeft
}

// Capability flags reported to the delegate.
type Capability uint32

const (
	// CapabilityOrientation is set for every controller.
	CapabilityOrientation Capability = 1 << iota
	// CapabilityPosition is set for 6-DoF controllers.
	CapabilityPosition
)

// Has reports whether all bits of flag are set.
func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

// Button is a semantic controller button.
type Button int

const (
	ButtonApp Button = iota
	ButtonTouchpad
	ButtonTrigger
	ButtonGrip
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonOthers
)

var buttonNames = [...]string{
	ButtonApp:      "app",
	ButtonTouchpad: "touchpad",
	ButtonTrigger:  "trigger",
	ButtonGrip:     "grip",
	ButtonA:        "A",
	ButtonB:        "B",
	ButtonX:        "X",
	ButtonY:        "Y",
	ButtonOthers:   "others",
}

// String returns the button name.
func (b Button) String() string {
	if b >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// Gamepad slots of the semantic buttons. The app button has no slot.
const (
	IndexNone          = -1
	IndexTouchpad      = 0
	IndexTrigger       = 1
	IndexGrip          = 2
	IndexFacePrimary   = 3
	IndexFaceSecondary = 4
	IndexOthers        = 5
)

// triggerPressThreshold is the analog value at which trigger and grip count
// as pressed without the digital bit.
const triggerPressThreshold = 0.5

// GripHapticIntensity is the value reported with a pressed grip.
const GripHapticIntensity = 20

// Raw button bits as reported by the runtime. Face buttons share bits across
// hands: AX is A on the right hand and X on the left.
const (
	RawButtonApp      uint32 = 1
	RawButtonTrigger  uint32 = 1 << 1
	RawButtonTouchpad uint32 = 1 << 2
	RawButtonAX       uint32 = 1 << 3
	RawButtonBY       uint32 = 1 << 4
	RawButtonGrip     uint32 = 1 << 5
)

// Controller is the state of one controller slot.
//
// The device mutates it from platform input events; the Normalizer reads it
// once per frame.
type Controller struct {
	index int

	// Enabled is true while the controller is connected.
	Enabled bool

	// Hand is the hand the controller is held in.
	Hand Hand

	// SixDoF is true when the runtime tracks position as well as orientation.
	SixDoF bool

	// Transform is the raw local transform from the runtime.
	Transform mgl32.Mat4

	// Pressed and Touched are raw bitmasks in the RawButton layout. A pressed
	// button always counts as touched.
	Pressed, Touched uint32

	// Trigger and Grip are analog values in [0, 1].
	Trigger, Grip float32

	// Touching is true while the touchpad is touched at (TouchX, TouchY).
	Touching       bool
	TouchX, TouchY float32

	caps     Capability
	capsSent bool
}

// New returns a disabled controller for slot index.
func New(index int) *Controller {
	return &Controller{
		index:     index,
		Hand:      HandForSlot(index),
		Transform: mgl32.Ident4(),
	}
}

// Index returns the controller slot. It never changes.
func (c *Controller) Index() int {
	return c.index
}

// IsRightHand reports whether the controller is held in the right hand.
func (c *Controller) IsRightHand() bool {
	return c.Hand == HandRight
}

// Capabilities returns the capability flags implied by the tracking mode.
func (c *Controller) Capabilities() Capability {
	caps := CapabilityOrientation
	if c.SixDoF {
		caps |= CapabilityPosition
	}
	return caps
}

// ButtonState is one decoded button.
type ButtonState struct {
	Button  Button
	Index   int
	Pressed bool
	Touched bool
	Value   float32
}

// Buttons decodes the raw bitmasks into semantic buttons in gamepad order.
// The shared face bits read as A/B on the right hand and X/Y on the left.
func (c *Controller) Buttons() []ButtonState {
	primary, secondary := ButtonA, ButtonB
	if !c.IsRightHand() {
		primary, secondary = ButtonX, ButtonY
	}

	pressed := func(bit uint32) bool { return c.Pressed&bit != 0 }
	touched := func(bit uint32) bool { return (c.Pressed|c.Touched)&bit != 0 }
	value := func(on bool) float32 {
		if on {
			return 1
		}
		return 0
	}

	app := pressed(RawButtonApp)
	touchpad := pressed(RawButtonTouchpad)
	trigger := pressed(RawButtonTrigger) || c.Trigger >= triggerPressThreshold
	grip := pressed(RawButtonGrip) || c.Grip >= triggerPressThreshold
	triggerValue := c.Trigger
	if pressed(RawButtonTrigger) {
		triggerValue = 1
	}
	var gripValue float32
	if grip {
		gripValue = GripHapticIntensity
	}
	ax, by := pressed(RawButtonAX), pressed(RawButtonBY)

	return []ButtonState{
		{ButtonApp, IndexNone, app, touched(RawButtonApp), value(app)},
		{ButtonTouchpad, IndexTouchpad, touchpad, touched(RawButtonTouchpad), value(touchpad)},
		{ButtonTrigger, IndexTrigger, trigger, trigger || touched(RawButtonTrigger), triggerValue},
		{ButtonGrip, IndexGrip, grip, grip || touched(RawButtonGrip), gripValue},
		{primary, IndexFacePrimary, ax, touched(RawButtonAX), value(ax)},
		{secondary, IndexFaceSecondary, by, touched(RawButtonBY), value(by)},
		{ButtonOthers, IndexOthers, false, false, 0},
	}
}
