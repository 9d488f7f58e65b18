// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ElbowModel infers a wrist position for orientation-only controllers.
//
// The shoulder hangs off the head, turned with the head's yaw only. The elbow
// rests below the shoulder, and the forearm points along the controller's
// orientation. Offsets are for the right arm in meters; the left arm mirrors X.
type ElbowModel struct {
	// ShoulderOffset is the shoulder position relative to the head.
	ShoulderOffset mgl32.Vec3

	// ElbowOffset is the resting elbow position relative to the shoulder.
	ElbowOffset mgl32.Vec3

	// ForearmLength is the elbow-to-wrist distance.
	ForearmLength float32
}

// DefaultElbowModel returns adult arm proportions.
func DefaultElbowModel() ElbowModel {
	return ElbowModel{
		ShoulderOffset: mgl32.Vec3{0.19, -0.19, 0.03},
		ElbowOffset:    mgl32.Vec3{0.005, -0.31, -0.025},
		ForearmLength:  0.25,
	}
}

// Transform returns the controller transform for hand given the head
// transform and the controller's raw transform. Only the rotation of raw is
// used.
func (e ElbowModel) Transform(hand Hand, head, raw mgl32.Mat4) mgl32.Mat4 {
	side := float32(1)
	if hand == HandLeft {
		side = -1
	}
	mirror := func(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X() * side, v.Y(), v.Z()} }

	yaw := HeadYaw(head)
	headPos := head.Col(3).Vec3()

	shoulder := headPos.Add(yaw.Rotate(mirror(e.ShoulderOffset)))
	elbow := shoulder.Add(yaw.Rotate(mirror(e.ElbowOffset)))

	rot := mgl32.Mat4ToQuat(raw).Normalize()
	wrist := elbow.Add(rot.Rotate(mgl32.Vec3{0, 0, -e.ForearmLength}))

	return mgl32.Translate3D(wrist.Elem()).Mul4(rot.Mat4())
}

// HeadYaw returns the rotation about +Y that turns -Z toward the head's
// forward direction projected onto the horizontal plane.
func HeadYaw(head mgl32.Mat4) mgl32.Quat {
	fwd := head.Mul4x1(mgl32.Vec4{0, 0, -1, 0})
	if math32.Abs(fwd.X()) < 1e-6 && math32.Abs(fwd.Z()) < 1e-6 {
		return mgl32.QuatIdent()
	}
	angle := math32.Atan2(-fwd.X(), -fwd.Z())
	return mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}
