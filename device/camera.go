// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
)

// Camera is one eye camera of the render context.
type Camera interface {
	// SetPerspective sets the eye projection.
	SetPerspective(projection mgl32.Mat4)

	// SetEyeTransform sets the eye position relative to the head.
	SetEyeTransform(transform mgl32.Mat4)

	// SetHeadTransform sets the head transform in world space.
	SetHeadTransform(transform mgl32.Mat4)
}

// CameraFactory creates the camera of eye.
type CameraFactory func(eye vrshell.Eye) Camera

// EyeCamera is the default Camera. It keeps the matrices it is given and
// derives the eye view from them.
type EyeCamera struct {
	eye        vrshell.Eye
	projection mgl32.Mat4
	eyeT       mgl32.Mat4
	head       mgl32.Mat4
}

// NewEyeCamera creates a camera for eye with identity matrices.
func NewEyeCamera(eye vrshell.Eye) *EyeCamera {
	return &EyeCamera{
		eye:        eye,
		projection: mgl32.Ident4(),
		eyeT:       mgl32.Ident4(),
		head:       mgl32.Ident4(),
	}
}

// Eye returns the camera's eye.
func (c *EyeCamera) Eye() vrshell.Eye { return c.eye }

// SetPerspective sets the eye projection.
func (c *EyeCamera) SetPerspective(projection mgl32.Mat4) { c.projection = projection }

// SetEyeTransform sets the eye position relative to the head.
func (c *EyeCamera) SetEyeTransform(transform mgl32.Mat4) { c.eyeT = transform }

// SetHeadTransform sets the head transform in world space.
func (c *EyeCamera) SetHeadTransform(transform mgl32.Mat4) { c.head = transform }

// Projection returns the eye projection.
func (c *EyeCamera) Projection() mgl32.Mat4 { return c.projection }

// EyeTransform returns the eye-in-head transform.
func (c *EyeCamera) EyeTransform() mgl32.Mat4 { return c.eyeT }

// HeadTransform returns the head transform.
func (c *EyeCamera) HeadTransform() mgl32.Mat4 { return c.head }

// View returns the world-to-eye matrix: inverse(head * eye).
func (c *EyeCamera) View() mgl32.Mat4 {
	return c.head.Mul4(c.eyeT).Inv()
}

// Ensure EyeCamera implements Camera.
var _ Camera = (*EyeCamera)(nil)

func defaultCameraFactory(eye vrshell.Eye) Camera {
	return NewEyeCamera(eye)
}

// eyeTransform returns the eye-in-head translation for ipd: left eye at
// -ipd/2, right eye at +ipd/2 on X.
func eyeTransform(eye vrshell.Eye, ipd float32) mgl32.Mat4 {
	return mgl32.Translate3D(eyeOffset(eye, ipd), 0, 0)
}

func eyeOffset(eye vrshell.Eye, ipd float32) float32 {
	if eye == vrshell.EyeLeft {
		return -ipd / 2
	}
	return ipd / 2
}
