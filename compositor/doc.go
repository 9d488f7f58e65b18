// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor assembles the per-frame layer submission.
//
// A Compositor holds the projection layer and a z-ordered stack of overlay
// layers. Each frame it updates them against the tracking sample, keeps the
// ones that are draw-eligible, and hands the result to a Backend:
//
//	c, err := compositor.New(backend)
//	if err := c.Init(platform); err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	c.SetProjection(scene)
//	_ = c.AddLayer(10, quad)
//
//	c.Update(sample)
//	sub, err := c.Submit(ctx, sample)
//
// Counters compositor.layers.submitted and compositor.layers.suppressed are
// recorded with a kind attribute.
package compositor
