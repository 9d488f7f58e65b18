// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/gogpu/vrshell"
)

// Config holds the headset parameters.
type Config struct {
	// DeviceName is reported to the display info collaborator.
	DeviceName string

	// IPD is the inter-pupillary distance in meters.
	IPD float32

	// FieldOfView is the full symmetric field of view in degrees.
	FieldOfView float32

	// Near and Far are the clip planes in meters.
	Near, Far float32

	// StandingHeight is the eye height used to offset head-relative tracking
	// in standalone mode, in meters.
	StandingHeight float32

	// EyeWidth and EyeHeight are the per-eye render target size in pixels.
	EyeWidth, EyeHeight uint32

	// Mode selects standalone or windowed positioning.
	Mode vrshell.RenderMode
}

// DefaultConfig returns the parameters of a typical standalone headset.
func DefaultConfig() Config {
	return Config{
		DeviceName:     "vrshell",
		IPD:            0.064,
		FieldOfView:    90,
		Near:           0.1,
		Far:            100,
		StandingHeight: 1.7,
		EyeWidth:       1440,
		EyeHeight:      1584,
		Mode:           vrshell.RenderModeStandalone,
	}
}

// Validate reports whether c describes a usable headset.
func (c Config) Validate() error {
	switch {
	case c.IPD < 0:
		return fmt.Errorf("device: negative IPD %v", c.IPD)
	case c.FieldOfView <= 0 || c.FieldOfView >= 180:
		return fmt.Errorf("device: field of view %v out of (0, 180)", c.FieldOfView)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("device: clip planes near=%v far=%v", c.Near, c.Far)
	case c.EyeWidth == 0 || c.EyeHeight == 0:
		return fmt.Errorf("device: eye resolution %dx%d", c.EyeWidth, c.EyeHeight)
	}
	return nil
}
