// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"github.com/gogpu/vrshell/xrmath"
)

// Equirect is an equirectangular panorama that samples another layer's
// swap-chain.
//
// It never owns a chain. The source is stored as an ID and re-resolved through
// the Registry on every access, so a destroyed source can never be sampled:
// the layer falls back to the clear chain and stops drawing.
type Equirect struct {
	id        ID
	desc      Descriptor
	source    ID
	registry  *Registry
	frame     Frame
	stale     bool
	destroyed bool
}

// NewEquirect creates an equirect layer for desc that samples the layer with
// ID source.
func NewEquirect(desc Descriptor, source ID) *Equirect {
	return &Equirect{id: newID(), desc: desc, source: source}
}

// ID returns the layer identifier.
func (e *Equirect) ID() ID { return e.id }

// Kind returns KindEquirect.
func (e *Equirect) Kind() Kind { return KindEquirect }

// Descriptor returns the application descriptor.
func (e *Equirect) Descriptor() Descriptor { return e.desc }

// Source returns the ID of the layer whose swap-chain is sampled.
func (e *Equirect) Source() ID { return e.source }

// Frame returns the record computed by the last Update.
func (e *Equirect) Frame() Frame { return e.frame }

// Init binds the layer to ctx.Registry. A missing source is not an error; the
// layer stays non-drawable until the source appears.
func (e *Equirect) Init(ctx InitContext) error {
	if ctx.Registry == nil {
		return ErrNoRegistry
	}
	e.registry = ctx.Registry
	e.destroyed = false
	e.publish()
	return nil
}

// resolve looks the source up. It returns nil when the source is gone or the
// layer is not bound.
func (e *Equirect) resolve() Layer {
	if e.destroyed || e.registry == nil {
		return nil
	}
	src, ok := e.registry.Lookup(e.source)
	if !ok {
		return nil
	}
	return src
}

// EffectiveSwapChain returns the source's current chain, or nil.
func (e *Equirect) EffectiveSwapChain() *swapchain.SwapChain {
	if src := e.resolve(); src != nil {
		return src.EffectiveSwapChain()
	}
	return nil
}

// publish forwards the source's texture handle to the descriptor and logs
// transitions into and out of the stale state.
func (e *Equirect) publish() *swapchain.SwapChain {
	chain := e.EffectiveSwapChain()
	if chain == nil {
		if !e.stale {
			e.stale = true
			vrshell.Logger().Warn("layer: equirect source unavailable",
				"id", e.id, "source", e.source, "err", ErrStaleReference)
		}
		e.desc.SetTextureHandle(0)
		return nil
	}
	if e.stale {
		e.stale = false
		vrshell.Logger().Info("layer: equirect source restored", "id", e.id, "source", e.source)
	}
	e.desc.SetTextureHandle(chain.RenderTarget(chain.Current()))
	return chain
}

// Update re-resolves the source and computes per-eye transforms. Orientation
// comes from the left-eye model transform for both eyes.
func (e *Equirect) Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain) {
	chain, slot := fallback, 0
	if c := e.publish(); c != nil {
		chain, slot = c, c.Current()
	}

	e.frame = Frame{
		ID:          e.id,
		Kind:        KindEquirect,
		Blend:       blendSourceAlpha,
		HeadPose:    sample.HeadPose,
		DisplayTime: sample.DisplayTime,
	}

	model := e.desc.ModelTransform(vrshell.EyeLeft)
	var rects [vrshell.EyeCount]vrshell.Rect
	for _, eye := range vrshell.Eyes {
		rects[eye] = e.desc.TextureRect(eye)
		mv := eyeView(e.desc, &sample, eye).Mul4(model)
		e.frame.Textures[eye] = EyeTexture{
			SwapChain:              chain,
			SwapChainIndex:         slot,
			TexCoordsFromTanAngles: xrmath.ToCompositor(mv.Inv()),
			TextureMatrix:          xrmath.TextureMatrixFromUV(e.desc.UVTransform(eye)),
			TextureRect:            rects[eye],
		}
	}
	e.frame.Flags = clipFlags(rects)
}

// IsDrawRequested reports whether the source is alive, has a chain, and is
// composited, and the descriptor requests drawing.
func (e *Equirect) IsDrawRequested() bool {
	src := e.resolve()
	if src == nil || src.EffectiveSwapChain() == nil {
		return false
	}
	sd := src.Descriptor()
	if sd == nil || !sd.IsComposited() {
		return false
	}
	return e.desc.IsDrawRequested()
}

// Destroy unbinds the layer from its source. The source is not affected.
func (e *Equirect) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.registry = nil
	e.desc.SetTextureHandle(0)
}

// Ensure Equirect implements Layer.
var _ Layer = (*Equirect)(nil)
