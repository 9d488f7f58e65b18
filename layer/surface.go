// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"github.com/gogpu/vrshell/xrmath"
)

// textureSurface is the state shared by layers that own one swap-chain and
// read an application Descriptor: Quad, Cylinder and Cube.
type textureSurface struct {
	id    ID
	kind  Kind
	desc  Descriptor
	chain *swapchain.SwapChain
	frame Frame
}

func newTextureSurface(kind Kind, desc Descriptor) textureSurface {
	return textureSurface{id: newID(), kind: kind, desc: desc}
}

// ID returns the layer identifier.
func (s *textureSurface) ID() ID { return s.id }

// Kind returns the layer type.
func (s *textureSurface) Kind() Kind { return s.kind }

// Descriptor returns the application descriptor.
func (s *textureSurface) Descriptor() Descriptor { return s.desc }

// Frame returns the record computed by the last Update.
func (s *textureSurface) Frame() Frame { return s.frame }

// allocate creates the owned chain. A valid chain is kept as is, so calling
// Init again after a success is a no-op and after a failure is a retry.
func (s *textureSurface) allocate(p swapchain.Platform, dim gputypes.TextureViewDimension) error {
	if s.chain.IsValid() {
		return nil
	}
	w, h := s.desc.TextureSize()
	d := swapchain.DefaultDescriptor(w, h, s.desc.TextureFormat())
	d.Label = fmt.Sprintf("%s-%d", s.kind, s.id)
	d.Dimension = dim

	sc, err := swapchain.Create(p, d)
	if err != nil {
		s.chain = nil
		s.desc.SetTextureHandle(0)
		return fmt.Errorf("layer: init %s %d: %w", s.kind, s.id, err)
	}
	s.chain = sc
	s.desc.SetTextureHandle(sc.RenderTarget(sc.Current()))
	vrshell.Logger().Info("layer: initialized", "kind", s.kind.String(), "id", s.id,
		"width", w, "height", h)
	return nil
}

// EffectiveSwapChain returns the owned chain, or nil when there is none.
func (s *textureSurface) EffectiveSwapChain() *swapchain.SwapChain {
	if s.chain.IsValid() {
		return s.chain
	}
	return nil
}

// Destroy releases the owned chain. It is idempotent.
func (s *textureSurface) Destroy() {
	if s.chain == nil {
		return
	}
	s.chain.Destroy()
	s.chain = nil
	s.desc.SetTextureHandle(0)
	vrshell.Logger().Debug("layer: destroyed", "kind", s.kind.String(), "id", s.id)
}

// beginFrame resets the record for sample. Each eye samples the owned chain's
// current slot, or slot 0 of fallback when the owned chain is gone. The chain
// then advances and the next slot is published to the descriptor.
func (s *textureSurface) beginFrame(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	chain, slot := fallback, 0
	if s.chain.IsValid() {
		chain, slot = s.chain, s.chain.Current()
	}

	var rects [vrshell.EyeCount]vrshell.Rect
	s.frame = Frame{
		ID:          s.id,
		Kind:        s.kind,
		HeadPose:    sample.HeadPose,
		DisplayTime: sample.DisplayTime,
	}
	for _, eye := range vrshell.Eyes {
		rects[eye] = s.desc.TextureRect(eye)
		s.frame.Textures[eye] = EyeTexture{
			SwapChain:      chain,
			SwapChainIndex: slot,
			TextureMatrix:  xrmath.Identity(),
			TextureRect:    rects[eye],
		}
	}
	s.frame.Flags = clipFlags(rects)

	if s.chain.IsValid() && s.chain.Length() > 1 {
		s.desc.SetTextureHandle(s.chain.RenderTarget(s.chain.Advance()))
	}
}

// eyeView returns the descriptor's view override for eye, or the sample's
// eye view.
func eyeView(desc Descriptor, sample *vrshell.TrackingSample, eye vrshell.Eye) mgl32.Mat4 {
	if v, ok := desc.View(eye); ok {
		return v
	}
	return sample.View(eye)
}
