// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads session settings from a TOML file.
//
// Missing keys keep their defaults; unknown keys are rejected so that typos
// do not go unnoticed:
//
//	[device]
//	ipd = 0.064
//	fov = 90.0
//	render_mode = "standalone"
//
//	[compositor]
//	max_layers = 16
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/compositor"
	"github.com/gogpu/vrshell/device"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for settings that parse but cannot be used.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the file layout.
type Config struct {
	Device     Device     `toml:"device"`
	Compositor Compositor `toml:"compositor"`
	SwapChain  SwapChain  `toml:"swapchain"`
	Log        Log        `toml:"log"`
}

// Device holds the [device] table.
type Device struct {
	Name           string  `toml:"name"`
	IPD            float32 `toml:"ipd"`
	FieldOfView    float32 `toml:"fov"`
	Near           float32 `toml:"near"`
	Far            float32 `toml:"far"`
	StandingHeight float32 `toml:"standing_height"`
	EyeWidth       uint32  `toml:"eye_width"`
	EyeHeight      uint32  `toml:"eye_height"`
	RenderMode     string  `toml:"render_mode"`
}

// Compositor holds the [compositor] table.
type Compositor struct {
	MaxLayers int `toml:"max_layers"`
}

// SwapChain holds the [swapchain] table.
type SwapChain struct {
	// Platform names a registered swap-chain platform. Empty selects the
	// highest-priority one.
	Platform string `toml:"platform"`
}

// Log holds the [log] table.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the settings used for missing keys.
func Default() *Config {
	d := device.DefaultConfig()
	return &Config{
		Device: Device{
			Name:           d.DeviceName,
			IPD:            d.IPD,
			FieldOfView:    d.FieldOfView,
			Near:           d.Near,
			Far:            d.Far,
			StandingHeight: d.StandingHeight,
			EyeWidth:       d.EyeWidth,
			EyeHeight:      d.EyeHeight,
			RenderMode:     d.Mode.String(),
		},
		Compositor: Compositor{MaxLayers: compositor.DefaultMaxLayers},
		SwapChain:  SwapChain{Platform: "memory"},
		Log:        Log{Level: "info"},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates TOML from r on top of Default.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config: %s", strict.String())
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports whether c can configure a session.
func (c *Config) Validate() error {
	if _, err := c.DeviceConfig(); err != nil {
		return err
	}
	if c.Compositor.MaxLayers < 1 {
		return fmt.Errorf("%w: compositor.max_layers=%d", ErrInvalid, c.Compositor.MaxLayers)
	}
	if _, err := vrshell.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// DeviceConfig converts the [device] table.
func (c *Config) DeviceConfig() (device.Config, error) {
	mode, err := vrshell.ParseRenderMode(c.Device.RenderMode)
	if err != nil {
		return device.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	d := device.Config{
		DeviceName:     c.Device.Name,
		IPD:            c.Device.IPD,
		FieldOfView:    c.Device.FieldOfView,
		Near:           c.Device.Near,
		Far:            c.Device.Far,
		StandingHeight: c.Device.StandingHeight,
		EyeWidth:       c.Device.EyeWidth,
		EyeHeight:      c.Device.EyeHeight,
		Mode:           mode,
	}
	if err := d.Validate(); err != nil {
		return device.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return d, nil
}
