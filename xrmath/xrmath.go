// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package xrmath adapts mgl32 geometry to the conventions of the platform
// compositor.
//
// Internal matrices are mgl32.Mat4: column vectors, stored column-major so
// that element (row, col) lives at index col*4+row. The compositor consumes
// row-major f32.Mat4 where element (row, col) lives at index row*4+col.
// ToCompositor and FromCompositor convert between the two by transposed
// reads, and are inverses of each other.
package xrmath

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"
)

// cell returns the internal matrix element stored at [a][b], where the
// internal storage is m[a*4+b] (column a, row b).
func cell(m *mgl32.Mat4, a, b int) float32 {
	return m[a*4+b]
}

// ToCompositor flattens m into the compositor's row-major layout.
//
// Element i of the result maps to row = i/4, col = i%4 and is read from the
// internal matrix at (col, row).
func ToCompositor(m mgl32.Mat4) f32.Mat4 {
	var out f32.Mat4
	for i := 0; i < 16; i++ {
		row, col := i/4, i%4
		out[i] = cell(&m, col, row)
	}
	return out
}

// FromCompositor converts a row-major compositor matrix back into the
// internal layout. FromCompositor(ToCompositor(m)) == m exactly.
func FromCompositor(c f32.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 16; i++ {
		row, col := i/4, i%4
		out[col*4+row] = c[i]
	}
	return out
}

// At returns the element at (row, col) of a row-major compositor matrix.
func At(m f32.Mat4, row, col int) float32 {
	return m[4*row+col]
}

// Set writes the element at (row, col) of a row-major compositor matrix.
func Set(m *f32.Mat4, row, col int, v float32) {
	m[4*row+col] = v
}

// Identity returns the row-major identity matrix.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Inverse returns the inverse of a row-major compositor matrix.
// A singular matrix yields the zero matrix, as mgl32 does.
func Inverse(m f32.Mat4) f32.Mat4 {
	return ToCompositor(FromCompositor(m).Inv())
}

// Mul returns a*b for row-major compositor matrices.
func Mul(a, b f32.Mat4) f32.Mat4 {
	return ToCompositor(FromCompositor(a).Mul4(FromCompositor(b)))
}
