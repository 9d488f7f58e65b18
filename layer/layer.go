// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/swapchain"
	"golang.org/x/image/math/f32"
)

// Layer errors.
var (
	// ErrStaleReference reports an equirect layer whose source layer has been
	// destroyed. It is logged, never returned from Update.
	ErrStaleReference = errors.New("layer: source layer destroyed")

	// ErrNoRegistry is returned by Init when a layer needs the relation table
	// and none was supplied.
	ErrNoRegistry = errors.New("layer: nil registry")

	// ErrDuplicateID is returned when a layer is added to a Registry twice.
	ErrDuplicateID = errors.New("layer: duplicate layer id")
)

// ID identifies a layer in a Registry.
type ID uint32

var lastID atomic.Uint32

// newID returns a process-unique, non-zero layer ID.
func newID() ID {
	return ID(lastID.Add(1))
}

// Kind is the compositor layer type.
type Kind int

const (
	// KindProjection is the main scene layer.
	KindProjection Kind = iota
	// KindQuad is a flat rectangle in world space.
	KindQuad
	// KindCylinder is a curved surface around the viewer.
	KindCylinder
	// KindCube is a cube-map environment.
	KindCube
	// KindEquirect is an equirectangular panorama.
	KindEquirect
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindProjection:
		return "projection"
	case KindQuad:
		return "quad"
	case KindCylinder:
		return "cylinder"
	case KindCube:
		return "cube"
	case KindEquirect:
		return "equirect"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Flags are per-frame compositor layer flags.
type Flags uint32

const (
	// FlagClipToTextureRect restricts sampling to the eye texture rects.
	FlagClipToTextureRect Flags = 1 << iota
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// EyeTexture is the per-eye part of a compositor layer record.
type EyeTexture struct {
	// SwapChain is the chain sampled this frame: the layer's own, its
	// source's, or the fallback clear chain.
	SwapChain *swapchain.SwapChain

	// SwapChainIndex is the slot sampled this frame.
	SwapChainIndex int

	// TexCoordsFromTanAngles maps view-space tan-angles to texture
	// coordinates. Row-major.
	TexCoordsFromTanAngles f32.Mat4

	// TextureMatrix is the 2D affine UV transform. Row-major.
	TextureMatrix f32.Mat4

	// TextureRect is the sampled sub-rectangle.
	TextureRect vrshell.Rect
}

// Frame is the compositor record a layer produces during Update.
type Frame struct {
	ID          ID
	Kind        Kind
	Flags       Flags
	Blend       gputypes.BlendState
	HeadPose    vrshell.Pose
	DisplayTime time.Duration
	Textures    [vrshell.EyeCount]EyeTexture

	// Offset is the cube-map center; zero for every other kind.
	Offset mgl32.Vec3
}

// InitContext carries what a layer needs to acquire its resources.
type InitContext struct {
	// Platform allocates swap-chains.
	Platform swapchain.Platform

	// Registry resolves layer relations (equirect sources).
	Registry *Registry
}

// Layer is one compositor overlay (or the main projection layer).
//
// Lifecycle: Init once (again after a failed Init), Update once per frame
// while active, Destroy when done. Destroy is idempotent and valid on a layer
// that was never initialized; IsDrawRequested stays safe afterwards.
type Layer interface {
	// ID returns the layer identifier.
	ID() ID

	// Kind returns the layer type.
	Kind() Kind

	// Descriptor returns the application descriptor, or nil for layers
	// without one (projection).
	Descriptor() Descriptor

	// Init allocates GPU resources, or binds to a source layer's.
	Init(ctx InitContext) error

	// Update recomputes the layer record for sample. fallback replaces the
	// layer's own swap-chain when that is unavailable.
	Update(sample vrshell.TrackingSample, fallback *swapchain.SwapChain)

	// Destroy releases owned resources.
	Destroy()

	// IsDrawRequested reports whether the layer should be submitted.
	IsDrawRequested() bool

	// EffectiveSwapChain returns the chain with this layer's content, or nil.
	EffectiveSwapChain() *swapchain.SwapChain

	// Frame returns the record computed by the last Update.
	Frame() Frame
}

// Blend states used by layer kinds.
var (
	// blendSourceAlpha is the compositor default for overlays.
	blendSourceAlpha = gputypes.BlendStateAlpha()

	// blendOneMinusSourceAlpha is set explicitly on cylinders: source one,
	// destination one-minus-source-alpha.
	blendOneMinusSourceAlpha = gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
)

// clipFlags returns FlagClipToTextureRect iff any eye rect is not the full
// texture. Layers call it on every Update.
func clipFlags(rects [vrshell.EyeCount]vrshell.Rect) Flags {
	for _, r := range rects {
		if !r.IsDefault() {
			return FlagClipToTextureRect
		}
	}
	return 0
}
