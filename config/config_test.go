// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/compositor"
	"github.com/gogpu/vrshell/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(`
[device]
ipd = 0.07
render_mode = "windowed"
`))
	require.NoError(t, err)

	assert.InDelta(t, 0.07, c.Device.IPD, 1e-6)
	assert.Equal(t, "windowed", c.Device.RenderMode)
	assert.Equal(t, float32(90), c.Device.FieldOfView)
	assert.Equal(t, compositor.DefaultMaxLayers, c.Compositor.MaxLayers)
	assert.Equal(t, "memory", c.SwapChain.Platform)
	assert.Equal(t, "info", c.Log.Level)

	d, err := c.DeviceConfig()
	require.NoError(t, err)
	assert.Equal(t, vrshell.RenderModeWindowed, d.Mode)
	assert.Equal(t, device.DefaultConfig().EyeWidth, d.EyeWidth)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader(`
[device]
ipdd = 0.07
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ipdd")
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"render mode", `device.render_mode = "floating"`},
		{"max layers", `compositor.max_layers = 0`},
		{"log level", `log.level = "loud"`},
		{"fov", `device.fov = 180.0`},
		{"clip planes", "device.near = 2.0\ndevice.far = 1.0"},
		{"eye size", `device.eye_width = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("[device\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[compositor]
max_layers = 4

[log]
level = "debug"
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Compositor.MaxLayers)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`compositor.max_layers = -1`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.ErrorIs(t, err, ErrInvalid)
}
