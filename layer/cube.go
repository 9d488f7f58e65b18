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

// Cube is a cube-map environment centered on the viewer.
type Cube struct {
	textureSurface
}

// NewCube creates a cube layer for desc. The descriptor's texture size is the
// face size and must be square.
func NewCube(desc Descriptor) *Cube {
	return &Cube{textureSurface: newTextureSurface(KindCube, desc)}
}

// Init allocates a six-face swap-chain.
func (c *Cube) Init(ctx InitContext) error {
	return c.allocate(ctx.Platform, gputypes.TextureViewDimensionCube)
}

// Update computes one lookup transform from the center-eye view and shares it
// between both eyes.
func (c *Cube) Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	c.beginFrame(sample, fallback)
	c.frame.Blend = blendSourceAlpha
	c.frame.Offset = mgl32.Vec3{}

	m := xrmath.TanAngleForCubeMap(xrmath.ToCompositor(sample.CenterEyeView))
	for _, eye := range vrshell.Eyes {
		c.frame.Textures[eye].TexCoordsFromTanAngles = m
	}
}

// IsDrawRequested reports whether the cube has a chain and loaded content.
// Cubes are not gated on the descriptor's draw request.
func (c *Cube) IsDrawRequested() bool {
	return c.chain.IsValid() && c.desc.IsLoaded()
}

// Ensure Cube implements Layer.
var _ Layer = (*Cube)(nil)
