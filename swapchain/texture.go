// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swapchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
)

// ErrNilCreator is returned when a TexturePlatform has no texture creator.
var ErrNilCreator = errors.New("swapchain: nil TextureCreator")

// textureDestroyer is the interface for destroying host textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// TexturePlatform allocates swap-chain slots as host GPU textures through a
// gpucontext.TextureCreator, typically obtained from the host's
// gpucontext.TextureDrawer.
//
// Slots start cleared to transparent black. Only RGBA8 formats are accepted
// because the creator uploads RGBA pixel data.
type TexturePlatform struct {
	creator gpucontext.TextureCreator
	next    Handle
	chains  map[Handle][][]gpucontext.Texture
	targets map[Handle][]RenderTarget
	nextRT  RenderTarget
}

// NewTexturePlatform creates a platform on top of creator.
func NewTexturePlatform(creator gpucontext.TextureCreator) *TexturePlatform {
	return &TexturePlatform{
		creator: creator,
		chains:  make(map[Handle][][]gpucontext.Texture),
		targets: make(map[Handle][]RenderTarget),
	}
}

// CreateSwapChain creates Length*Faces textures. On failure every texture
// created so far is released.
func (p *TexturePlatform) CreateSwapChain(desc Descriptor) (Handle, error) {
	if p.creator == nil {
		return 0, ErrNilCreator
	}
	if desc.Format != gputypes.TextureFormatRGBA8Unorm && desc.Format != gputypes.TextureFormatRGBA8UnormSrgb {
		return 0, fmt.Errorf("format %s not supported by texture creator", desc.Format)
	}

	w, h := int(desc.Width), int(desc.Height)
	pixels := make([]byte, w*h*4)

	slots := make([][]gpucontext.Texture, 0, desc.Length)
	for range desc.Length {
		faces := make([]gpucontext.Texture, 0, desc.Faces())
		for range desc.Faces() {
			tex, err := p.creator.NewTextureFromRGBA(w, h, pixels)
			if err != nil {
				destroyTextures(append(slots, faces))
				return 0, fmt.Errorf("NewTextureFromRGBA failed: %w", err)
			}
			faces = append(faces, tex)
		}
		slots = append(slots, faces)
	}

	p.next++
	p.chains[p.next] = slots
	targets := make([]RenderTarget, desc.Length)
	for i := range targets {
		p.nextRT++
		targets[i] = p.nextRT
	}
	p.targets[p.next] = targets
	return p.next, nil
}

// DestroySwapChain destroys every texture of h.
func (p *TexturePlatform) DestroySwapChain(h Handle) {
	slots, ok := p.chains[h]
	if !ok {
		return
	}
	destroyTextures(slots)
	delete(p.chains, h)
	delete(p.targets, h)
}

// RenderTargetHandle returns the handle assigned to slot at creation.
func (p *TexturePlatform) RenderTargetHandle(h Handle, slot int) RenderTarget {
	targets := p.targets[h]
	if slot < 0 || slot >= len(targets) {
		return 0
	}
	return targets[slot]
}

// Texture returns the host texture of face in slot, or nil.
func (p *TexturePlatform) Texture(h Handle, slot, face int) gpucontext.Texture {
	slots, ok := p.chains[h]
	if !ok || slot < 0 || slot >= len(slots) || face < 0 || face >= len(slots[slot]) {
		return nil
	}
	return slots[slot][face]
}

func destroyTextures(slots [][]gpucontext.Texture) {
	for _, faces := range slots {
		for _, tex := range faces {
			if d, ok := tex.(textureDestroyer); ok {
				d.Destroy()
			} else {
				vrshell.Logger().Warn("swapchain: texture has no Destroy method", "type", fmt.Sprintf("%T", tex))
			}
		}
	}
}

// Ensure TexturePlatform implements Platform.
var _ Platform = (*TexturePlatform)(nil)
