// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/layer"
	"github.com/gogpu/vrshell/swapchain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultMaxLayers is the layer limit of a submission, projection included.
const DefaultMaxLayers = 16

// Compositor errors.
var (
	// ErrDuplicateLayer is returned when a z-order or a layer is already in
	// the stack.
	ErrDuplicateLayer = errors.New("compositor: duplicate layer")

	// ErrUnknownLayer is returned when removing a z-order that is not in the
	// stack.
	ErrUnknownLayer = errors.New("compositor: unknown layer")

	// ErrNotInitialized is returned by Submit before Init.
	ErrNotInitialized = errors.New("compositor: not initialized")
)

// Submission is the frame handed to the platform compositor: layer records
// in blend order, base first.
type Submission struct {
	FrameIndex  uint64
	DisplayTime time.Duration
	HeadPose    vrshell.Pose
	Layers      []layer.Frame
}

// Backend is the platform compositor.
type Backend interface {
	// SubmitFrame hands the frame over. It blocks until the platform has
	// accepted it.
	SubmitFrame(ctx context.Context, s Submission) error
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, s Submission) error

// SubmitFrame calls f(ctx, s).
func (f BackendFunc) SubmitFrame(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// Compositor keeps the z-ordered overlay stack and assembles one Submission
// per frame.
//
// Layers are rendered in ascending z-order, above the projection layer. The
// compositor does not own layers; it owns only the fallback clear chain.
//
// Compositor is NOT safe for concurrent use; it lives on the render thread.
type Compositor struct {
	backend   Backend
	maxLayers int

	clear      *swapchain.SwapChain
	projection layer.Layer
	layers     map[int]layer.Layer
	zOrder     []int

	submitted  metric.Int64Counter
	suppressed metric.Int64Counter
}

// New creates a compositor that submits to backend.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(backend Backend, opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Compositor{
		backend:   backend,
		maxLayers: o.maxLayers,
		layers:    make(map[int]layer.Layer),
	}

	var err error
	c.submitted, err = o.meter.Int64Counter(
		"compositor.layers.submitted",
		metric.WithDescription("Total layers handed to the platform compositor"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submitted counter: %w", err)
	}

	c.suppressed, err = o.meter.Int64Counter(
		"compositor.layers.suppressed",
		metric.WithDescription("Total layers left out of a frame"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating suppressed counter: %w", err)
	}

	return c, nil
}

// Init creates the fallback clear chain on platform. Calling it again while
// the chain is live is a no-op.
func (c *Compositor) Init(platform swapchain.Platform) error {
	if c.clear.IsValid() {
		return nil
	}
	sc, err := swapchain.NewClear(platform)
	if err != nil {
		return fmt.Errorf("compositor: clear texture: %w", err)
	}
	c.clear = sc
	return nil
}

// Close destroys the clear chain. Layers are left to their owner.
func (c *Compositor) Close() {
	c.clear.Destroy()
	c.clear = nil
}

// ClearTexture returns the fallback chain, or nil before Init.
func (c *Compositor) ClearTexture() *swapchain.SwapChain {
	if c.clear.IsValid() {
		return c.clear
	}
	return nil
}

// MaxLayers returns the layer limit of a submission.
func (c *Compositor) MaxLayers() int {
	return c.maxLayers
}

// SetProjection designates the base layer. nil removes it.
func (c *Compositor) SetProjection(l layer.Layer) {
	c.projection = l
}

// Projection returns the base layer, or nil.
func (c *Compositor) Projection() layer.Layer {
	return c.projection
}

// AddLayer places l at z-order z.
// Returns an error if z is taken or l is already in the stack.
func (c *Compositor) AddLayer(z int, l layer.Layer) error {
	if l == nil {
		return fmt.Errorf("%w: nil layer at z=%d", ErrUnknownLayer, z)
	}
	if _, exists := c.layers[z]; exists {
		return fmt.Errorf("%w: z=%d already exists", ErrDuplicateLayer, z)
	}
	for other, existing := range c.layers {
		if existing.ID() == l.ID() {
			return fmt.Errorf("%w: layer %d already at z=%d", ErrDuplicateLayer, l.ID(), other)
		}
	}

	c.layers[z] = l
	c.zOrder = nil
	return nil
}

// RemoveLayer takes the layer at z out of the stack without destroying it.
func (c *Compositor) RemoveLayer(z int) error {
	if _, exists := c.layers[z]; !exists {
		return fmt.Errorf("%w: z=%d does not exist", ErrUnknownLayer, z)
	}
	delete(c.layers, z)
	c.zOrder = nil
	return nil
}

// Layer returns the layer at z.
func (c *Compositor) Layer(z int) (layer.Layer, bool) {
	l, ok := c.layers[z]
	return l, ok
}

// Layers returns all z-orders in render order (ascending).
func (c *Compositor) Layers() []int {
	if c.zOrder == nil {
		c.zOrder = make([]int, 0, len(c.layers))
		for z := range c.layers {
			c.zOrder = append(c.zOrder, z)
		}
		slices.Sort(c.zOrder)
	}
	// Return a copy to prevent modification
	result := make([]int, len(c.zOrder))
	copy(result, c.zOrder)
	return result
}

// Update runs every layer's Update against sample with the clear chain as
// fallback: projection first, then the stack in z-order.
func (c *Compositor) Update(sample vrshell.TrackingSample) {
	fallback := c.ClearTexture()
	if c.projection != nil {
		c.projection.Update(sample, fallback)
	}
	for _, z := range c.Layers() {
		c.layers[z].Update(sample, fallback)
	}
}

// Assemble builds the submission for sample from the records of the last
// Update. Layers failing IsDrawRequested, or whose record samples a chain
// that has since been destroyed, are omitted. No layer appears twice, and
// records beyond MaxLayers are dropped.
func (c *Compositor) Assemble(ctx context.Context, sample vrshell.TrackingSample) Submission {
	s := Submission{
		FrameIndex:  sample.FrameIndex,
		DisplayTime: sample.DisplayTime,
		HeadPose:    sample.HeadPose,
	}

	ordered := make([]layer.Layer, 0, len(c.layers)+1)
	if c.projection != nil {
		ordered = append(ordered, c.projection)
	}
	for _, z := range c.Layers() {
		ordered = append(ordered, c.layers[z])
	}

	seen := make(map[layer.ID]bool, len(ordered))
	dropped := 0
	for _, l := range ordered {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true

		if !l.IsDrawRequested() {
			c.suppress(ctx, l, "not draw-requested")
			continue
		}
		f := l.Frame()
		if !recordValid(f) {
			c.suppress(ctx, l, "stale swap-chain")
			continue
		}
		if len(s.Layers) >= c.maxLayers {
			dropped++
			c.suppressed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", l.Kind().String())))
			continue
		}
		s.Layers = append(s.Layers, f)
		c.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", l.Kind().String())))
	}

	if dropped > 0 {
		vrshell.Logger().Warn("compositor: layer limit exceeded",
			"frame", sample.FrameIndex, "limit", c.maxLayers, "dropped", dropped)
	}
	return s
}

// Submit assembles the frame for sample and hands it to the backend.
func (c *Compositor) Submit(ctx context.Context, sample vrshell.TrackingSample) (Submission, error) {
	if !c.clear.IsValid() {
		return Submission{}, ErrNotInitialized
	}
	s := c.Assemble(ctx, sample)
	if err := c.backend.SubmitFrame(ctx, s); err != nil {
		return s, fmt.Errorf("compositor: submit frame %d: %w", sample.FrameIndex, err)
	}
	vrshell.Logger().Debug("compositor: submitted", "frame", sample.FrameIndex, "layers", len(s.Layers))
	return s, nil
}

func (c *Compositor) suppress(ctx context.Context, l layer.Layer, reason string) {
	c.suppressed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", l.Kind().String())))
	vrshell.Logger().Debug("compositor: layer suppressed", "id", l.ID(), "kind", l.Kind().String(), "reason", reason)
}

// recordValid reports whether every eye of f samples a live chain.
func recordValid(f layer.Frame) bool {
	for _, tex := range f.Textures {
		if !tex.SwapChain.IsValid() {
			return false
		}
	}
	return true
}
