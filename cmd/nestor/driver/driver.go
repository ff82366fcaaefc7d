// Package driver implements nes.Screen and nes.Input over SDL2: a
// scaled window blitting the 256x240 ARGB framebuffer, and a keyboard
// poller mapping scancodes to the NES button bitmask.
package driver

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"nescore/controller"
	"nescore/internal/config"
	"nescore/internal/log"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// Driver owns the SDL window, renderer and texture used to present
// frames, and the live keyboard state used to poll controller input.
type Driver struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	bindings config.InputConfig
	pad2     bool // true once a second controller is plugged in (unused by NROM-only titles, kept for completeness)
}

// New opens a window titled title, scaled by scale (minimum 1), and
// wires keyboard polling to the given button bindings.
func New(title string, scale int, bindings config.InputConfig) (*Driver, error) {
	if scale < 1 {
		scale = 1
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("driver: sdl init: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(screenWidth*scale), int32(screenHeight*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("driver: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("driver: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, fmt.Errorf("driver: create texture: %w", err)
	}

	return &Driver{window: window, renderer: renderer, texture: texture, bindings: bindings}, nil
}

// Close tears down the SDL window and releases its resources.
func (d *Driver) Close() {
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
	sdl.Quit()
}

// Render implements nes.Screen: blits the framebuffer to the window.
func (d *Driver) Render(fb *[256 * 240]uint32) {
	pixels, _, err := d.texture.Lock(nil)
	if err != nil {
		log.ModNES.Errorf("driver: texture lock: %v", err)
		return
	}
	for i, px := range fb {
		o := i * 4
		pixels[o+0] = byte(px)
		pixels[o+1] = byte(px >> 8)
		pixels[o+2] = byte(px >> 16)
		pixels[o+3] = byte(px >> 24)
	}
	d.texture.Unlock()

	d.renderer.Clear()
	d.renderer.Copy(d.texture, nil, nil)
	d.renderer.Present()
}

// PumpEvents drains the SDL event queue, returning false once the
// window has been asked to close.
func (d *Driver) PumpEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Poll implements nes.Input: reads the live keyboard state into the
// A/B/Select/Start/Up/Down/Left/Right bitmask for controller 1. A second
// controller is not exposed by any host keyboard binding, so it always
// reads zero.
func (d *Driver) Poll() (pad1, pad2 uint8) {
	keys := sdl.GetKeyboardState()
	bind := func(name string) bool {
		scancode := sdl.GetScancodeFromName(name)
		if scancode == sdl.SCANCODE_UNKNOWN {
			return false
		}
		return keys[scancode] != 0
	}

	var mask uint8
	if bind(d.bindings.A) {
		mask |= uint8(controller.ButtonA)
	}
	if bind(d.bindings.B) {
		mask |= uint8(controller.ButtonB)
	}
	if bind(d.bindings.Select) {
		mask |= uint8(controller.ButtonSelect)
	}
	if bind(d.bindings.Start) {
		mask |= uint8(controller.ButtonStart)
	}
	if bind(d.bindings.Up) {
		mask |= uint8(controller.ButtonUp)
	}
	if bind(d.bindings.Down) {
		mask |= uint8(controller.ButtonDown)
	}
	if bind(d.bindings.Left) {
		mask |= uint8(controller.ButtonLeft)
	}
	if bind(d.bindings.Right) {
		mask |= uint8(controller.ButtonRight)
	}
	return mask, 0
}
