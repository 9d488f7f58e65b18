// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package session

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vrshell/layer"
)

// Option configures a Session during creation.
//
// Example:
//
//	s := session.New(dev, comp, platform, session.WithProjectionFormat(gputypes.TextureFormatBGRA8Unorm))
type Option func(*options)

// options holds optional configuration for Session creation.
type options struct {
	registry   *layer.Registry
	format     gputypes.TextureFormat
	projection bool
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		format:     gputypes.TextureFormatRGBA8Unorm,
		projection: true,
	}
}

// WithRegistry sets the registry that owns the session's layers. Pass a
// shared registry when equirect layers refer to layers created elsewhere.
func WithRegistry(r *layer.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithProjectionFormat sets the texture format of the projection layer.
func WithProjectionFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithoutProjection starts the session with overlays only.
func WithoutProjection() Option {
	return func(o *options) {
		o.projection = false
	}
}
