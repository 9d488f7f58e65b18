// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"github.com/gogpu/vrshell/xrmath"
)

// Quad is a flat rectangle placed in world space.
type Quad struct {
	textureSurface
}

// NewQuad creates a quad layer for desc.
func NewQuad(desc Descriptor) *Quad {
	return &Quad{textureSurface: newTextureSurface(KindQuad, desc)}
}

// Init allocates the quad's swap-chain.
func (q *Quad) Init(ctx InitContext) error {
	return q.allocate(ctx.Platform, gputypes.TextureViewDimension2D)
}

// Scale returns the transform that maps the unit square onto the quad's world
// extent: diag(width/2, height/2, 1).
func (q *Quad) Scale() mgl32.Mat4 {
	w, h := q.desc.WorldSize()
	return mgl32.Scale3D(w/2, h/2, 1)
}

// Update computes per-eye tan-angle transforms from view * model * Scale.
func (q *Quad) Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	q.beginFrame(sample, fallback)
	q.frame.Blend = blendSourceAlpha

	scale := q.Scale()
	for _, eye := range vrshell.Eyes {
		mv := eyeView(q.desc, &sample, eye).Mul4(q.desc.ModelTransform(eye)).Mul4(scale)
		q.frame.Textures[eye].TexCoordsFromTanAngles = xrmath.TanAngleFromUnitSquare(xrmath.ToCompositor(mv))
	}
}

// IsDrawRequested reports whether the quad has a chain, loaded content, and a
// draw request.
func (q *Quad) IsDrawRequested() bool {
	return q.chain.IsValid() && q.desc.IsLoaded() && q.desc.IsDrawRequested()
}

// Ensure Quad implements Layer.
var _ Layer = (*Quad)(nil)
