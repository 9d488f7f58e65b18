// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xrmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"
)

// TanAngleFromUnitSquare returns the matrix that maps view-space tan-angles to
// texture coordinates of a unit square ([-1,1] in X and Y) placed by
// modelView. Quad layers use it after scaling the square to world size.
func TanAngleFromUnitSquare(modelView f32.Mat4) f32.Mat4 {
	inv := Inverse(modelView)
	coef := float32(1)
	if At(inv, 2, 3) <= 0 {
		coef = -1
	}

	var m f32.Mat4
	for col := 0; col < 3; col++ {
		Set(&m, 0, col, (0.5*(At(inv, 0, col)*At(inv, 2, 3)-At(inv, 0, 3)*At(inv, 2, col))-0.5*At(inv, 2, col))*coef)
		Set(&m, 1, col, (-0.5*(At(inv, 1, col)*At(inv, 2, 3)-At(inv, 1, 3)*At(inv, 2, col))-0.5*At(inv, 2, col))*coef)
		Set(&m, 2, col, -At(inv, 2, col)*coef)
	}
	Set(&m, 3, 3, 1)
	return m
}

// TanAngleForCubeMap returns the shared cube-map lookup transform for a view
// matrix: the view with its translation cleared, inverted.
func TanAngleForCubeMap(view f32.Mat4) f32.Mat4 {
	m := view
	for row := 0; row < 3; row++ {
		Set(&m, row, 3, 0)
	}
	return Inverse(m)
}

// TanAngleFromProjection returns the tan-angle transform of a projection
// layer rendered with the given eye projection.
func TanAngleFromProjection(projection f32.Mat4) f32.Mat4 {
	return f32.Mat4{
		0.5 * At(projection, 0, 0), 0, 0.5*At(projection, 0, 2) - 0.5, 0,
		0, 0.5 * At(projection, 1, 1), 0.5*At(projection, 1, 2) - 0.5, 0,
		0, 0, -1, 0,
		0, 0, -1, 0,
	}
}

// TextureMatrixFromUV encodes the 2D affine part of a UV transform into a
// compositor texture matrix: scale on the row 0/1 diagonal, translation in
// column 2 of rows 0 and 1. Everything else stays identity.
func TextureMatrixFromUV(uv mgl32.Mat4) f32.Mat4 {
	m := Identity()
	Set(&m, 0, 0, uv.At(0, 0))
	Set(&m, 1, 1, uv.At(1, 1))
	Set(&m, 0, 2, uv.At(0, 3))
	Set(&m, 1, 2, uv.At(1, 3))
	return m
}

// FieldOfView holds the four half-angles of an eye frustum, in degrees.
type FieldOfView struct {
	Left, Right, Up, Down float32
}

// SymmetricFieldOfView returns a frustum whose full horizontal and vertical
// extent is fov degrees.
func SymmetricFieldOfView(fov float32) FieldOfView {
	half := fov / 2
	return FieldOfView{Left: half, Right: half, Up: half, Down: half}
}

// Radians returns the half-angles converted to radians.
func (f FieldOfView) Radians() (left, right, up, down float32) {
	return mgl32.DegToRad(f.Left), mgl32.DegToRad(f.Right), mgl32.DegToRad(f.Up), mgl32.DegToRad(f.Down)
}

// Projection returns an off-axis perspective projection for fov and the clip
// planes.
func Projection(fov FieldOfView, near, far float32) mgl32.Mat4 {
	l, r, u, d := fov.Radians()
	return mgl32.Frustum(
		-near*math32.Tan(l), near*math32.Tan(r),
		-near*math32.Tan(d), near*math32.Tan(u),
		near, far,
	)
}
