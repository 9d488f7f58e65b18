// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "github.com/gogpu/vrshell"

// Capability flags describing the headset to the host.
type Capability uint32

const (
	CapabilityOrientation Capability = 1 << iota
	CapabilityPosition
	CapabilityPresent
	CapabilityStageParameters
)

// DisplayInfo is the host's record of the headset. It is filled once by
// RegisterDisplayInfo and updated when IPD, field of view or clip planes
// change.
type DisplayInfo interface {
	SetDeviceName(name string)
	SetCapabilityFlags(flags Capability)

	// SetFieldOfView sets the four half-angles of eye in degrees.
	SetFieldOfView(eye vrshell.Eye, left, right, up, down float32)

	// SetEyeOffset sets the eye position relative to the head in meters.
	SetEyeOffset(eye vrshell.Eye, x, y, z float32)

	// SetEyeResolution sets the per-eye render target size in pixels.
	SetEyeResolution(width, height uint32)

	// SetClipPlanes sets the near and far planes in meters.
	SetClipPlanes(near, far float32)

	// CompleteEnumeration marks the record as complete.
	CompleteEnumeration()
}
