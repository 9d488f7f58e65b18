// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
)

// Descriptor is the application-level description of an overlay surface.
// The browser owns it and mutates it between frames; layers only read it,
// except for the texture handle they publish back.
type Descriptor interface {
	// WorldSize returns the surface extent in meters.
	WorldSize() (width, height float32)

	// TextureSize returns the swap-chain extent in pixels.
	TextureSize() (width, height uint32)

	// TextureFormat returns the swap-chain pixel format.
	TextureFormat() gputypes.TextureFormat

	// View returns the view matrix for eye. ok is false when the layer should
	// use the tracking sample's eye view.
	View(eye vrshell.Eye) (view mgl32.Mat4, ok bool)

	// ModelTransform returns the surface placement for eye.
	ModelTransform(eye vrshell.Eye) mgl32.Mat4

	// UVTransform returns the texture coordinate transform for eye.
	UVTransform(eye vrshell.Eye) mgl32.Mat4

	// TextureRect returns the sampled sub-rectangle for eye.
	TextureRect(eye vrshell.Eye) vrshell.Rect

	// IsLoaded reports whether content has been rendered into the surface.
	IsLoaded() bool

	// IsComposited reports whether the surface content is composited by the
	// platform rather than drawn by the scene renderer.
	IsComposited() bool

	// IsDrawRequested reports whether the application wants it drawn.
	IsDrawRequested() bool

	// SetTextureHandle publishes the render target the application should
	// draw into. Zero means none.
	SetTextureHandle(rt swapchain.RenderTarget)
}

// Surface is the standard Descriptor implementation.
//
// The zero value is not usable; create with NewSurface.
type Surface struct {
	worldWidth, worldHeight     float32
	textureWidth, textureHeight uint32
	format                      gputypes.TextureFormat

	views    [vrshell.EyeCount]mgl32.Mat4
	hasView  [vrshell.EyeCount]bool
	models   [vrshell.EyeCount]mgl32.Mat4
	uvs      [vrshell.EyeCount]mgl32.Mat4
	rects    [vrshell.EyeCount]vrshell.Rect
	loaded   bool
	composed bool
	draw     bool
	texture  swapchain.RenderTarget
}

// NewSurface creates a descriptor of the given world size (meters) and
// texture size (pixels). Transforms start as identity, rects as the full
// texture, and the surface is draw-requested but not yet loaded.
func NewSurface(worldWidth, worldHeight float32, textureWidth, textureHeight uint32) *Surface {
	s := &Surface{
		worldWidth:    worldWidth,
		worldHeight:   worldHeight,
		textureWidth:  textureWidth,
		textureHeight: textureHeight,
		format:        gputypes.TextureFormatRGBA8Unorm,
		draw:          true,
	}
	for _, eye := range vrshell.Eyes {
		s.models[eye] = mgl32.Ident4()
		s.uvs[eye] = mgl32.Ident4()
		s.rects[eye] = vrshell.FullRect()
	}
	return s
}

// WorldSize returns the surface extent in meters.
func (s *Surface) WorldSize() (width, height float32) { return s.worldWidth, s.worldHeight }

// SetWorldSize sets the surface extent in meters.
func (s *Surface) SetWorldSize(width, height float32) {
	s.worldWidth, s.worldHeight = width, height
}

// TextureSize returns the swap-chain extent in pixels.
func (s *Surface) TextureSize() (width, height uint32) { return s.textureWidth, s.textureHeight }

// TextureFormat returns the swap-chain pixel format.
func (s *Surface) TextureFormat() gputypes.TextureFormat { return s.format }

// SetTextureFormat sets the swap-chain pixel format used by the next Init.
func (s *Surface) SetTextureFormat(f gputypes.TextureFormat) { s.format = f }

// View returns the view override for eye, if one was set.
func (s *Surface) View(eye vrshell.Eye) (mgl32.Mat4, bool) {
	return s.views[eye], s.hasView[eye]
}

// SetView overrides the tracking view for eye.
func (s *Surface) SetView(eye vrshell.Eye, view mgl32.Mat4) {
	s.views[eye] = view
	s.hasView[eye] = true
}

// ClearView removes the view override for eye.
func (s *Surface) ClearView(eye vrshell.Eye) {
	s.hasView[eye] = false
}

// ModelTransform returns the surface placement for eye.
func (s *Surface) ModelTransform(eye vrshell.Eye) mgl32.Mat4 { return s.models[eye] }

// SetModelTransform places the surface for eye.
func (s *Surface) SetModelTransform(eye vrshell.Eye, m mgl32.Mat4) { s.models[eye] = m }

// SetModelTransforms places the surface identically for both eyes.
func (s *Surface) SetModelTransforms(m mgl32.Mat4) {
	for _, eye := range vrshell.Eyes {
		s.models[eye] = m
	}
}

// UVTransform returns the texture coordinate transform for eye.
func (s *Surface) UVTransform(eye vrshell.Eye) mgl32.Mat4 { return s.uvs[eye] }

// SetUVTransform sets the texture coordinate transform for eye.
func (s *Surface) SetUVTransform(eye vrshell.Eye, m mgl32.Mat4) { s.uvs[eye] = m }

// TextureRect returns the sampled sub-rectangle for eye.
func (s *Surface) TextureRect(eye vrshell.Eye) vrshell.Rect { return s.rects[eye] }

// SetTextureRect sets the sampled sub-rectangle for eye.
func (s *Surface) SetTextureRect(eye vrshell.Eye, r vrshell.Rect) { s.rects[eye] = r }

// IsLoaded reports whether content has been rendered into the surface.
func (s *Surface) IsLoaded() bool { return s.loaded }

// SetLoaded marks the surface content as loaded.
func (s *Surface) SetLoaded(loaded bool) { s.loaded = loaded }

// IsComposited reports whether the surface is composited by the platform.
func (s *Surface) IsComposited() bool { return s.composed }

// SetComposited marks the surface as platform-composited.
func (s *Surface) SetComposited(composited bool) { s.composed = composited }

// IsDrawRequested reports whether the application wants it drawn.
func (s *Surface) IsDrawRequested() bool { return s.draw }

// RequestDraw sets whether the application wants the surface drawn.
func (s *Surface) RequestDraw(draw bool) { s.draw = draw }

// TextureHandle returns the render target published by the layer.
func (s *Surface) TextureHandle() swapchain.RenderTarget { return s.texture }

// SetTextureHandle publishes the render target to draw into.
func (s *Surface) SetTextureHandle(rt swapchain.RenderTarget) { s.texture = rt }

// Ensure Surface implements Descriptor.
var _ Descriptor = (*Surface)(nil)
