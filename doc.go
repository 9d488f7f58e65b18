// Package vrshell renders stereoscopic frames and tracks input devices for a
// VR browser shell.
//
// # Overview
//
// vrshell sits between a vendor VR runtime (head tracking, controller poses,
// compositor swap-chains) and the browser's scene renderer. It covers two
// tightly coupled mechanisms:
//
//   - the per-frame compositor layer model: typed overlay surfaces (quad,
//     cylinder, cube, equirect) that own or borrow swap-chain textures and are
//     submitted to the platform compositor every frame
//   - the device/input state machine: head pose integration, controller
//     lifecycle, button normalization and elbow-model arm inference
//
// # Architecture
//
// The module is organized leaf-first:
//   - vrshell: value types shared by every package (Eye, Pose, Rect, TrackingSample) and the logger
//   - xrmath: matrix conventions and tan-angle transforms on top of mathgl
//   - swapchain: compositor-visible texture rings and the platforms that allocate them
//   - layer: Quad, Cylinder, Cube, Equirect and Projection layers
//   - compositor: per-frame ordering and submission of layers
//   - controller: controller state, button decoding, elbow model
//   - device: head/eye cameras, render mode, controller array
//   - session: one VR session, driving device and compositor once per frame
//   - config: TOML settings for device, compositor, swap-chain platform and logging
//
// # Frame Flow
//
//	sample := runtime.Track()           // platform supplies a TrackingSample
//	dev.StartFrame(sample)              // head/eye transforms, controllers
//	comp.Update(dev.Sample())           // every active layer, offset head
//	comp.Submit(ctx, dev.Sample())      // ordered array to the platform compositor
//
// session.Session wraps those calls and honors pause state.
//
// # Threading
//
// Everything runs on the render thread inside one frame boundary. Hosts that
// receive input on another thread must serialize it before calling into
// device.Device.
//
// # Coordinate System
//
// Right-handed, Y up, -Z forward, meters. Internal matrices are mgl32.Mat4
// (column vectors); compositor matrices are row-major f32.Mat4.
package vrshell

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"
)
