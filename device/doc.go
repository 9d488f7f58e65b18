// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device implements the headset state machine.
//
// A Device moves through Uninitialized, Running and Paused, and ends in
// ShutDown. Each frame StartFrame integrates a tracking sample into the head
// transform and the eye cameras and normalizes controller input:
//
//	d := device.New(device.WithControllerDelegate(delegate))
//	if err := d.Initialize(); err != nil {
//	    return err
//	}
//	defer d.Shutdown()
//
//	if !d.IsPaused() {
//	    _ = d.StartFrame(sample)
//	}
//
// In standalone mode tracking is head-relative: the first tracked position is
// lifted to the configured standing height, and that offset is kept for the
// rest of the session.
package device
