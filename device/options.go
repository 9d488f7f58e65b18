// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "github.com/gogpu/vrshell/controller"

// Option configures a Device during creation.
//
// Example:
//
//	d := device.New(
//	    device.WithConfig(cfg),
//	    device.WithControllerDelegate(delegate),
//	)
type Option func(*options)

// options holds optional configuration for Device creation.
type options struct {
	config   Config
	cameras  CameraFactory
	delegate controller.Delegate
	display  DisplayInfo
	elbow    controller.ElbowModel
}

// defaultOptions returns the default device options.
func defaultOptions() options {
	return options{
		config:   DefaultConfig(),
		cameras:  defaultCameraFactory,
		delegate: controller.NopDelegate{},
		elbow:    controller.DefaultElbowModel(),
	}
}

// WithConfig sets the headset parameters.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithCameraFactory sets the factory of the eye cameras.
// Without it each eye gets an EyeCamera.
func WithCameraFactory(f CameraFactory) Option {
	return func(o *options) {
		if f != nil {
			o.cameras = f
		}
	}
}

// WithControllerDelegate sets the receiver of controller events.
func WithControllerDelegate(d controller.Delegate) Option {
	return func(o *options) {
		if d != nil {
			o.delegate = d
		}
	}
}

// WithDisplayInfo registers the display info collaborator at Initialize.
func WithDisplayInfo(info DisplayInfo) Option {
	return func(o *options) {
		o.display = info
	}
}

// WithElbowModel sets the arm model of orientation-only controllers.
func WithElbowModel(e controller.ElbowModel) Option {
	return func(o *options) {
		o.elbow = e
	}
}
