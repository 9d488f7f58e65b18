// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swapchain

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
)

// Handle is an opaque platform swap-chain identifier. Zero is never a valid
// handle.
type Handle uint64

// RenderTarget is the platform handle of one swap-chain slot, the value the
// scene renderer binds as its color attachment.
type RenderTarget uint32

// Platform is the render-context collaborator that owns compositor-visible
// textures. The core calls it only through these three methods.
//
// Key principle: vrshell RECEIVES GPU resources from the platform, it does not
// create a device of its own.
type Platform interface {
	// CreateSwapChain allocates desc.Length slots. The descriptor has been
	// validated. Returns an error if the format or extent is unsupported.
	CreateSwapChain(desc Descriptor) (Handle, error)

	// DestroySwapChain releases every slot of h. Called exactly once per
	// handle.
	DestroySwapChain(h Handle)

	// RenderTargetHandle returns the render-target handle of a slot.
	RenderTargetHandle(h Handle, slot int) RenderTarget
}

// platforms holds named platform factories. Hosts register a GPU-backed
// platform under "texture" once their device is up; "memory" is always
// available.
var platforms = gpucontext.NewRegistry[Platform](
	gpucontext.WithPriority("texture", "memory"),
)

func init() {
	RegisterPlatform("memory", func() Platform { return NewMemoryPlatform() })
}

// RegisterPlatform adds or replaces a named platform factory.
//
// Example:
//
//	swapchain.RegisterPlatform("texture", func() swapchain.Platform {
//	    return swapchain.NewTexturePlatform(dc.TextureCreator())
//	})
func RegisterPlatform(name string, factory func() Platform) {
	platforms.Register(name, factory)
}

// UnregisterPlatform removes a named platform factory.
func UnregisterPlatform(name string) {
	platforms.Unregister(name)
}

// NewPlatform creates the platform registered under name.
func NewPlatform(name string) (Platform, error) {
	if !platforms.Has(name) {
		return nil, fmt.Errorf("swapchain: platform %q not registered (available: %v)", name, Platforms())
	}
	return platforms.Get(name), nil
}

// OpenPlatform creates the platform registered under name, or the
// highest-priority one when name is empty. It returns the name it resolved.
func OpenPlatform(name string) (Platform, string, error) {
	if name == "" {
		p, best := BestPlatform()
		return p, best, nil
	}
	p, err := NewPlatform(name)
	if err != nil {
		return nil, "", err
	}
	return p, name, nil
}

// BestPlatform creates the highest-priority registered platform and returns
// it with its name.
func BestPlatform() (Platform, string) {
	name := platforms.BestName()
	return platforms.Get(name), name
}

// Platforms returns the registered platform names, sorted.
func Platforms() []string {
	names := platforms.Available()
	slices.Sort(names)
	return names
}
