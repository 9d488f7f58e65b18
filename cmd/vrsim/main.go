// Command vrsim drives a synthetic VR session and logs every submitted frame.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/vrshell"
	"github.com/gogpu/vrshell/compositor"
	"github.com/gogpu/vrshell/config"
	"github.com/gogpu/vrshell/controller"
	"github.com/gogpu/vrshell/device"
	"github.com/gogpu/vrshell/layer"
	"github.com/gogpu/vrshell/session"
	"github.com/gogpu/vrshell/swapchain"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML settings file (defaults when empty)")
		frames     = flag.Int("frames", 90, "number of frames to simulate")
		verbose    = flag.Bool("v", false, "log per-frame diagnostics")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	level, _ := vrshell.ParseLogLevel(cfg.Log.Level)
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vrshell.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *frames, logger); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, frames int, logger *slog.Logger) error {
	platform, platformName, err := swapchain.OpenPlatform(cfg.SwapChain.Platform)
	if err != nil {
		return err
	}
	devCfg, err := cfg.DeviceConfig()
	if err != nil {
		return err
	}

	dev := device.New(
		device.WithConfig(devCfg),
		device.WithControllerDelegate(&logDelegate{logger: logger}),
	)
	comp, err := compositor.New(compositor.BackendFunc(func(_ context.Context, s compositor.Submission) error {
		logger.Info("frame submitted", "frame", s.FrameIndex, "layers", describe(s))
		return nil
	}), compositor.WithMaxLayers(cfg.Compositor.MaxLayers))
	if err != nil {
		return err
	}

	s := session.New(dev, comp, platform)
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Close()

	if err := addLayers(s); err != nil {
		return err
	}
	for i := range controller.MaxCount {
		if err := dev.UpdateControllerConnected(i, true); err != nil {
			return err
		}
	}

	for i := 1; i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			logger.Info("interrupted", "frame", i)
			break
		}
		feedControllers(dev, i)
		if _, _, err := s.Frame(ctx, headSample(uint64(i), devCfg)); err != nil {
			return err
		}
	}

	logger.Info("simulation finished", "frames", s.Frames(), "platform", platformName)
	return nil
}

// addLayers builds a small browser scene: a page quad, a curved tab strip, a
// sky cube and a 360 video sampling the page.
func addLayers(s *session.Session) error {
	page := layer.NewSurface(1.6, 0.9, 1280, 720)
	page.SetModelTransforms(mgl32.Translate3D(0, 1.6, -2))
	page.SetLoaded(true)
	page.SetComposited(true)
	quad := layer.NewQuad(page)

	tabs := layer.NewSurface(2, 0.3, 1024, 128)
	tabs.SetModelTransforms(mgl32.Translate3D(0, 2.2, -2))
	tabs.SetTextureRect(vrshell.EyeLeft, vrshell.Rect{Width: 1, Height: 0.5})
	tabs.SetTextureRect(vrshell.EyeRight, vrshell.Rect{Y: 0.5, Width: 1, Height: 0.5})
	tabs.SetLoaded(true)
	cylinder := layer.NewCylinder(tabs)

	sky := layer.NewSurface(1, 1, 256, 256)
	sky.SetLoaded(true)
	cube := layer.NewCube(sky)

	video := layer.NewSurface(1, 1, 1280, 720)
	equirect := layer.NewEquirect(video, quad.ID())

	for z, l := range []layer.Layer{cube, equirect, quad, cylinder} {
		if err := s.AddLayer(z, l); err != nil {
			return err
		}
	}
	return nil
}

// headSample turns slowly to the left while the tracked position stays at
// the floor origin.
func headSample(frame uint64, cfg device.Config) vrshell.TrackingSample {
	yaw := float32(frame) * 0.01
	head := vrshell.Pose{
		Position:    mgl32.Vec3{0, 0.05, 0},
		Orientation: mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}),
	}
	return vrshell.NewTrackingSample(frame, 0, head, cfg.IPD, mgl32.Ident4())
}

// feedControllers presses the trigger on the right hand every other frame and
// drags a thumb across the left touchpad.
func feedControllers(dev *device.Device, frame int) {
	var pressed uint32
	var trigger float32
	if frame%2 == 0 {
		pressed, trigger = controller.RawButtonTrigger, 1
	}
	_ = dev.UpdateControllerPose(0, mgl32.HomogRotate3DX(-0.2), false)
	_ = dev.UpdateControllerButtons(0, pressed, controller.RawButtonTrigger, trigger, 0)

	x := float32(frame%10) / 10
	_ = dev.UpdateControllerPose(1, mgl32.Ident4(), false)
	_ = dev.UpdateControllerTouch(1, frame%20 < 10, x, 0.5)
}

func describe(s compositor.Submission) string {
	kinds := make([]string, len(s.Layers))
	for i, f := range s.Layers {
		kinds[i] = f.Kind.String()
	}
	return strings.Join(kinds, ",")
}

// logDelegate prints normalized controller events at debug level.
type logDelegate struct {
	controller.NopDelegate
	logger *slog.Logger
}

func (d *logDelegate) SetButtonState(index int, button controller.Button, buttonIndex int, pressed, touched bool, value float32) {
	if pressed {
		d.logger.Debug("button", "controller", index, "button", button.String(), "index", buttonIndex,
			"touched", touched, "value", value)
	}
}

func (d *logDelegate) SetTransform(index int, m mgl32.Mat4) {
	p := m.Col(3)
	d.logger.Debug("controller transform", "controller", index, "x", p.X(), "y", p.Y(), "z", p.Z())
}
