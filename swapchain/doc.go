// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package swapchain manages compositor-visible texture rings.
//
// A SwapChain owns one or more texture slots allocated by a Platform (the
// render-context collaborator). Layers render into the current slot and the
// compositor samples it. Two platforms ship with the package:
//   - MemoryPlatform: CPU images, for headless sessions and tests
//   - TexturePlatform: host GPU textures through gpucontext.TextureCreator
//
// Platforms are also available by name through a registry:
//
//	p, err := swapchain.NewPlatform("memory")
//	sc, err := swapchain.Create(p, swapchain.DefaultDescriptor(1024, 1024, gputypes.TextureFormatRGBA8Unorm))
//	defer sc.Destroy()
//
// Destroy is idempotent: destroying twice, or destroying a nil chain, is a
// no-op.
package swapchain
