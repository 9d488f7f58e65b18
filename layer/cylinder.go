// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"github.com/gogpu/vrshell/xrmath"
)

// Cylinder is a curved surface wrapped around the viewer.
//
// The compositor samples cylinders through the inverse model-view rather than
// a unit-square projection, and the UV transform is packed as a 2D affine.
type Cylinder struct {
	textureSurface
}

// NewCylinder creates a cylinder layer for desc.
func NewCylinder(desc Descriptor) *Cylinder {
	return &Cylinder{textureSurface: newTextureSurface(KindCylinder, desc)}
}

// Init allocates the cylinder's swap-chain.
func (c *Cylinder) Init(ctx InitContext) error {
	return c.allocate(ctx.Platform, gputypes.TextureViewDimension2D)
}

// Update computes per-eye inverse model-view and texture matrices.
func (c *Cylinder) Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	c.beginFrame(sample, fallback)
	c.frame.Blend = blendOneMinusSourceAlpha

	for _, eye := range vrshell.Eyes {
		mv := eyeView(c.desc, &sample, eye).Mul4(c.desc.ModelTransform(eye))
		tex := &c.frame.Textures[eye]
		tex.TexCoordsFromTanAngles = xrmath.ToCompositor(mv.Inv())
		tex.TextureMatrix = xrmath.TextureMatrixFromUV(c.desc.UVTransform(eye))
	}
}

// IsDrawRequested reports whether the cylinder has a chain, loaded content,
// and a draw request.
func (c *Cylinder) IsDrawRequested() bool {
	return c.chain.IsValid() && c.desc.IsLoaded() && c.desc.IsDrawRequested()
}

// Ensure Cylinder implements Layer.
var _ Layer = (*Cylinder)(nil)
