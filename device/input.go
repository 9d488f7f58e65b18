// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/controller"
)

// Controller returns the controller in slot index.
func (d *Device) Controller(index int) (*controller.Controller, error) {
	if index < 0 || index >= controller.MaxCount {
		return nil, fmt.Errorf("%w: controller %d not in [0, %d)", vrshell.ErrInvalidIndex, index, controller.MaxCount)
	}
	c := d.controllers[index]
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c, nil
}

// UpdateControllerConnected records a connect or disconnect. On every actual
// change the delegate is told the handedness, then enabled and visible.
func (d *Device) UpdateControllerConnected(index int, connected bool) error {
	c, err := d.Controller(index)
	if err != nil {
		return err
	}
	if c.Enabled == connected {
		return nil
	}
	c.Enabled = connected
	d.delegate.SetLeftHanded(index, c.Hand == controller.HandLeft)
	d.delegate.SetEnabled(index, connected)
	d.delegate.SetVisible(index, connected)
	vrshell.Logger().Info("device: controller connection", "index", index,
		"hand", c.Hand.String(), "connected", connected)
	return nil
}

// UpdateControllerPose records the raw transform of a controller. sixDoF
// reports whether the transform carries a tracked position.
func (d *Device) UpdateControllerPose(index int, transform mgl32.Mat4, sixDoF bool) error {
	c, err := d.Controller(index)
	if err != nil {
		return err
	}
	c.Transform = transform
	c.SixDoF = sixDoF
	return nil
}

// UpdateControllerButtons records the raw button and touch bitmasks and the
// analog trigger and grip values.
func (d *Device) UpdateControllerButtons(index int, pressed, touched uint32, trigger, grip float32) error {
	c, err := d.Controller(index)
	if err != nil {
		return err
	}
	c.Pressed, c.Touched = pressed, touched
	c.Trigger, c.Grip = trigger, grip
	return nil
}

// UpdateControllerTouch records the touchpad state. x and y are ignored when
// touched is false.
func (d *Device) UpdateControllerTouch(index int, touched bool, x, y float32) error {
	c, err := d.Controller(index)
	if err != nil {
		return err
	}
	c.Touching = touched
	if touched {
		c.TouchX, c.TouchY = x, y
	}
	return nil
}
