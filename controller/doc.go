// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package controller normalizes tracked-controller input.
//
// Controller holds the raw state of one slot as the runtime reports it: a
// button bitmask, a touch bitmask, analog trigger and grip, and a transform
// that carries position only for 6-DoF controllers. Once per frame a
// Normalizer translates that state into Delegate calls: capability flags,
// semantic buttons with hand-dependent face labels, zeroed axes, touch
// position or end-touch, and a final transform.
//
// Orientation-only controllers get a position from ElbowModel, which hangs a
// shoulder, elbow and forearm off the head pose.
package controller
