// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"github.com/gogpu/vrshell/xrmath"
)

// Projection is the main scene layer: one swap-chain per eye, rendered with
// the eye projection and composited beneath every overlay.
type Projection struct {
	id     ID
	width  uint32
	height uint32
	format gputypes.TextureFormat
	chains [vrshell.EyeCount]*swapchain.SwapChain
	frame  Frame
}

// NewProjection creates a projection layer with per-eye render targets of the
// given size and format.
func NewProjection(width, height uint32, format gputypes.TextureFormat) *Projection {
	return &Projection{id: newID(), width: width, height: height, format: format}
}

// ID returns the layer identifier.
func (p *Projection) ID() ID { return p.id }

// Kind returns KindProjection.
func (p *Projection) Kind() Kind { return KindProjection }

// Descriptor returns nil; the scene renderer drives the projection layer
// directly.
func (p *Projection) Descriptor() Descriptor { return nil }

// Frame returns the record computed by the last Update.
func (p *Projection) Frame() Frame { return p.frame }

// Init allocates both eye chains. On failure any chain created is released.
func (p *Projection) Init(ctx InitContext) error {
	for _, eye := range vrshell.Eyes {
		if p.chains[eye].IsValid() {
			continue
		}
		d := swapchain.DefaultDescriptor(p.width, p.height, p.format)
		d.Label = fmt.Sprintf("projection-%d-%s", p.id, eye)
		sc, err := swapchain.Create(ctx.Platform, d)
		if err != nil {
			p.Destroy()
			return fmt.Errorf("layer: init projection %d eye %s: %w", p.id, eye, err)
		}
		p.chains[eye] = sc
	}
	vrshell.Logger().Info("layer: initialized", "kind", KindProjection.String(), "id", p.id,
		"width", p.width, "height", p.height)
	return nil
}

// RenderTarget returns the render target the scene should draw eye into this
// frame, or zero when the eye chain is unavailable.
func (p *Projection) RenderTarget(eye vrshell.Eye) swapchain.RenderTarget {
	sc := p.chains[eye]
	if !sc.IsValid() {
		return 0
	}
	return sc.RenderTarget(sc.Current())
}

// EffectiveSwapChain returns the left-eye chain, or nil.
func (p *Projection) EffectiveSwapChain() *swapchain.SwapChain {
	return p.EyeSwapChain(vrshell.EyeLeft)
}

// EyeSwapChain returns the chain of eye, or nil.
func (p *Projection) EyeSwapChain(eye vrshell.Eye) *swapchain.SwapChain {
	if p.chains[eye].IsValid() {
		return p.chains[eye]
	}
	return nil
}

// Update records the current slots and the tan-angle transform of each eye
// projection, then advances the chains.
func (p *Projection) Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	p.frame = Frame{
		ID:          p.id,
		Kind:        KindProjection,
		Blend:       gputypes.BlendStateReplace(),
		HeadPose:    sample.HeadPose,
		DisplayTime: sample.DisplayTime,
	}
	for _, eye := range vrshell.Eyes {
		chain, slot := fallback, 0
		if sc := p.chains[eye]; sc.IsValid() {
			chain, slot = sc, sc.Current()
			sc.Advance()
		}
		p.frame.Textures[eye] = EyeTexture{
			SwapChain:              chain,
			SwapChainIndex:         slot,
			TexCoordsFromTanAngles: xrmath.TanAngleFromProjection(xrmath.ToCompositor(sample.Eyes[eye].Projection)),
			TextureMatrix:          xrmath.Identity(),
			TextureRect:            vrshell.FullRect(),
		}
	}
}

// IsDrawRequested reports whether both eye chains are live.
func (p *Projection) IsDrawRequested() bool {
	return p.chains[vrshell.EyeLeft].IsValid() && p.chains[vrshell.EyeRight].IsValid()
}

// Destroy releases both eye chains. It is idempotent.
func (p *Projection) Destroy() {
	for eye := range p.chains {
		p.chains[eye].Destroy()
		p.chains[eye] = nil
	}
}

// Ensure Projection implements Layer.
var _ Layer = (*Projection)(nil)
