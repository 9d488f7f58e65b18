// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swapchain

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// MemoryPlatform is a CPU-backed Platform. Each slot is an *image.RGBA.
//
// It is used for headless sessions (cmd/vrsim) and tests, and enforces the
// same format and extent limits a compositor would.
type MemoryPlatform struct {
	formats   map[gputypes.TextureFormat]bool
	maxExtent uint32
	next      Handle
	chains    map[Handle]*memoryChain
	created   int
	destroyed int
}

type memoryChain struct {
	desc  Descriptor
	slots [][]*image.RGBA
}

// MemoryOption configures a MemoryPlatform.
type MemoryOption func(*MemoryPlatform)

// WithFormats restricts the formats the platform accepts.
func WithFormats(formats ...gputypes.TextureFormat) MemoryOption {
	return func(p *MemoryPlatform) {
		p.formats = make(map[gputypes.TextureFormat]bool, len(formats))
		for _, f := range formats {
			p.formats[f] = true
		}
	}
}

// WithMaxExtent limits slot width and height.
func WithMaxExtent(n uint32) MemoryOption {
	return func(p *MemoryPlatform) {
		p.maxExtent = n
	}
}

// NewMemoryPlatform creates a platform accepting RGBA8/BGRA8 (linear and
// sRGB) up to 4096 pixels per side.
func NewMemoryPlatform(opts ...MemoryOption) *MemoryPlatform {
	p := &MemoryPlatform{
		maxExtent: 4096,
		chains:    make(map[Handle]*memoryChain),
	}
	WithFormats(
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb,
	)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateSwapChain allocates CPU images for every slot and face.
func (p *MemoryPlatform) CreateSwapChain(desc Descriptor) (Handle, error) {
	if !p.formats[desc.Format] {
		return 0, fmt.Errorf("format %s not supported", desc.Format)
	}
	if desc.Width > p.maxExtent || desc.Height > p.maxExtent {
		return 0, fmt.Errorf("extent %dx%d exceeds %d", desc.Width, desc.Height, p.maxExtent)
	}

	c := &memoryChain{desc: desc, slots: make([][]*image.RGBA, desc.Length)}
	for i := range c.slots {
		faces := make([]*image.RGBA, desc.Faces())
		for f := range faces {
			faces[f] = image.NewRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
		}
		c.slots[i] = faces
	}

	p.next++
	p.chains[p.next] = c
	p.created++
	return p.next, nil
}

// DestroySwapChain drops the images of h.
func (p *MemoryPlatform) DestroySwapChain(h Handle) {
	if _, ok := p.chains[h]; !ok {
		return
	}
	delete(p.chains, h)
	p.destroyed++
}

// RenderTargetHandle encodes handle and slot into one render-target value.
func (p *MemoryPlatform) RenderTargetHandle(h Handle, slot int) RenderTarget {
	//nolint:gosec // G115: handles and slots are small
	return RenderTarget(uint32(h)<<8 | uint32(slot))
}

// Image returns the image backing face of slot in h, or nil.
func (p *MemoryPlatform) Image(h Handle, slot, face int) *image.RGBA {
	c, ok := p.chains[h]
	if !ok || slot < 0 || slot >= len(c.slots) || face < 0 || face >= len(c.slots[slot]) {
		return nil
	}
	return c.slots[slot][face]
}

// Live returns the number of swap-chains not yet destroyed.
func (p *MemoryPlatform) Live() int {
	return len(p.chains)
}

// Stats returns the total number of created and destroyed swap-chains.
func (p *MemoryPlatform) Stats() (created, destroyed int) {
	return p.created, p.destroyed
}

// Ensure MemoryPlatform implements Platform.
var _ Platform = (*MemoryPlatform)(nil)
