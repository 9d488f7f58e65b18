// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer implements compositor layers.
//
// A layer turns an application Descriptor (world size, placement, UV
// transform, texture rects and load state) into a Frame record for one
// tracking sample. The variants are:
//   - Quad: flat rectangle, unit-square tan-angle projection
//   - Cylinder: curved surface, inverse model-view with packed UV affine
//   - Cube: cube-map environment shared by both eyes
//   - Equirect: panorama sampling another layer's swap-chain
//   - Projection: the main scene, one swap-chain per eye
//
// Typical usage:
//
//	reg := layer.NewRegistry()
//	desc := layer.NewSurface(2, 1, 1024, 512)
//	quad := layer.NewQuad(desc)
//	if err := quad.Init(layer.InitContext{Platform: p, Registry: reg}); err != nil {
//	    return err
//	}
//	_ = reg.Add(quad)
//
//	// once per frame
//	quad.Update(sample, clear)
//	if quad.IsDrawRequested() {
//	    submit(quad.Frame())
//	}
//
// A layer whose swap-chain is unavailable records the fallback chain for the
// frame and reports false from IsDrawRequested, so it is never drawn with
// stale content.
package layer
