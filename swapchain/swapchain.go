// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swapchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
)

// Swap-chain errors.
var (
	// ErrAllocation is returned when the platform compositor rejects a
	// swap-chain (unsupported format or size, out of memory).
	ErrAllocation = errors.New("swapchain: allocation failed")

	// ErrInvalidDescriptor is returned for descriptors that can never be
	// allocated (zero length, zero extent, undefined format).
	ErrInvalidDescriptor = errors.New("swapchain: invalid descriptor")
)

// Descriptor describes a swap-chain to allocate.
// This mirrors the render-target texture descriptor with an added ring length.
type Descriptor struct {
	// Label is an optional debug label.
	Label string

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Width is the slot width in pixels.
	Width uint32

	// Height is the slot height in pixels.
	Height uint32

	// Length is the number of slots in the ring (1 for single-buffered).
	Length int

	// Dimension is TextureViewDimension2D for flat layers or
	// TextureViewDimensionCube for cube-map layers.
	Dimension gputypes.TextureViewDimension

	// Usage specifies how the slot textures will be used.
	Usage gputypes.TextureUsage
}

// DefaultDescriptor returns a triple-buffered 2D descriptor with sensible
// defaults. Only width, height, and format need to be set.
func DefaultDescriptor(width, height uint32, format gputypes.TextureFormat) Descriptor {
	return Descriptor{
		Format:    format,
		Width:     width,
		Height:    height,
		Length:    3,
		Dimension: gputypes.TextureViewDimension2D,
		Usage:     gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment,
	}
}

// Validate reports whether d can be passed to a platform.
func (d Descriptor) Validate() error {
	switch {
	case d.Length < 1:
		return fmt.Errorf("%w: length=%d", ErrInvalidDescriptor, d.Length)
	case d.Width == 0 || d.Height == 0:
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDescriptor, d.Width, d.Height)
	case d.Format == gputypes.TextureFormatUndefined:
		return fmt.Errorf("%w: undefined format", ErrInvalidDescriptor)
	}
	switch d.Dimension {
	case gputypes.TextureViewDimension2D:
	case gputypes.TextureViewDimensionCube:
		if d.Width != d.Height {
			return fmt.Errorf("%w: cube faces must be square, got %dx%d", ErrInvalidDescriptor, d.Width, d.Height)
		}
	default:
		return fmt.Errorf("%w: unsupported dimension %s", ErrInvalidDescriptor, d.Dimension)
	}
	return nil
}

// Faces returns the number of textures per slot: 6 for cube maps, else 1.
func (d Descriptor) Faces() int {
	if d.Dimension == gputypes.TextureViewDimensionCube {
		return 6
	}
	return 1
}

// SwapChain is a ring of compositor-visible texture slots.
//
// A SwapChain is owned by exactly one layer. Destroy releases it exactly
// once; later calls, and calls on a nil *SwapChain, are no-ops.
//
// SwapChain is NOT safe for concurrent use; it lives on the render thread.
type SwapChain struct {
	platform  Platform
	handle    Handle
	desc      Descriptor
	targets   []RenderTarget
	current   int
	destroyed bool
}

// Create allocates a swap-chain of desc.Length slots on p.
//
// Returns an error wrapping ErrInvalidDescriptor if desc is malformed, or
// ErrAllocation if the platform rejects it.
func Create(p Platform, desc Descriptor) (*SwapChain, error) {
	if desc.Dimension == gputypes.TextureViewDimensionUndefined {
		desc.Dimension = gputypes.TextureViewDimension2D
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil platform", ErrAllocation)
	}

	h, err := p.CreateSwapChain(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q %s %dx%d: %w", ErrAllocation, desc.Label, desc.Format, desc.Width, desc.Height, err)
	}

	sc := &SwapChain{
		platform: p,
		handle:   h,
		desc:     desc,
		targets:  make([]RenderTarget, desc.Length),
	}
	for slot := range sc.targets {
		sc.targets[slot] = p.RenderTargetHandle(h, slot)
	}

	vrshell.Logger().Debug("swapchain: created",
		"label", desc.Label, "handle", h, "format", desc.Format.String(),
		"width", desc.Width, "height", desc.Height, "length", desc.Length)
	return sc, nil
}

// NewClear creates the single-slot 1x1 transparent swap-chain that layers
// fall back to when they have no valid content for a frame.
func NewClear(p Platform) (*SwapChain, error) {
	return Create(p, Descriptor{
		Label:     "clear",
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Width:     1,
		Height:    1,
		Length:    1,
		Dimension: gputypes.TextureViewDimension2D,
		Usage:     gputypes.TextureUsageTextureBinding,
	})
}

// Handle returns the platform handle. It is zero after Destroy.
func (s *SwapChain) Handle() Handle {
	if s == nil || s.destroyed {
		return 0
	}
	return s.handle
}

// Descriptor returns the descriptor the chain was created with.
func (s *SwapChain) Descriptor() Descriptor {
	return s.desc
}

// Length returns the number of slots in the ring.
func (s *SwapChain) Length() int {
	return s.desc.Length
}

// Width returns the slot width in pixels.
func (s *SwapChain) Width() uint32 {
	return s.desc.Width
}

// Height returns the slot height in pixels.
func (s *SwapChain) Height() uint32 {
	return s.desc.Height
}

// Format returns the slot pixel format.
func (s *SwapChain) Format() gputypes.TextureFormat {
	return s.desc.Format
}

// RenderTarget returns the render-target handle of slot.
//
// It panics if slot is outside [0, Length()): an out-of-range slot is an
// integration error, not a runtime condition.
func (s *SwapChain) RenderTarget(slot int) RenderTarget {
	if slot < 0 || slot >= len(s.targets) {
		panic(fmt.Sprintf("swapchain: slot %d out of range [0, %d)", slot, len(s.targets)))
	}
	return s.targets[slot]
}

// Current returns the slot the compositor samples this frame.
func (s *SwapChain) Current() int {
	return s.current
}

// Advance moves to the next slot in the ring and returns it.
func (s *SwapChain) Advance() int {
	s.current = (s.current + 1) % s.desc.Length
	return s.current
}

// IsValid reports whether s is non-nil and not yet destroyed.
func (s *SwapChain) IsValid() bool {
	return s != nil && !s.destroyed
}

// Destroy releases all slots. It is idempotent and safe on nil.
func (s *SwapChain) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true
	s.platform.DestroySwapChain(s.handle)
	s.targets = nil
	vrshell.Logger().Debug("swapchain: destroyed", "label", s.desc.Label, "handle", s.handle)
}
