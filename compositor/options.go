// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import "go.opentelemetry.io/otel/metric"

// Option configures a Compositor during creation.
//
// Example:
//
//	c, err := compositor.New(backend, compositor.WithMaxLayers(8))
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	meter     metric.Meter
	maxLayers int
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		meter:     meter(),
		maxLayers: DefaultMaxLayers,
	}
}

// WithMeter sets the meter that creates the layer counters.
// Without it the global OTel meter is used.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		if m != nil {
			o.meter = m
		}
	}
}

// WithMaxLayers sets the submission layer limit, projection included.
// Values below 1 are ignored.
func WithMaxLayers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLayers = n
		}
	}
}
