// Package host provides the SDL2 surface of the emulator: the scaled 64x32
// window, the keyboard event pump feeding the keypad, and the tone beeper.
package host

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/wwboyer/potatocho/internal/chip8"
	"github.com/wwboyer/potatocho/internal/config"
)

// Keypad is the key event sink the event pump feeds, implemented by the
// interpreter core.
type Keypad interface {
	KeyDown(key byte)
	KeyUp(key byte)
}

// Host owns the SDL window, renderer and audio device.
type Host struct {
	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	beeper   *beeper
}

// New initializes SDL and opens the emulator window at the configured scale
// over the 64x32 logical resolution.
func New(logger *log.Logger, cfg config.Emulator) (*Host, error) {
	subsystems := uint32(sdl.INIT_VIDEO)
	if !cfg.Mute {
		subsystems |= sdl.INIT_AUDIO
	}
	if err := sdl.Init(subsystems); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	width := int32(chip8.FrameWidth * cfg.Scale)
	height := int32(chip8.FrameHeight * cfg.Scale)
	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	if err := renderer.SetLogicalSize(chip8.FrameWidth, chip8.FrameHeight); err != nil {
		return nil, fmt.Errorf("setting logical size: %w", err)
	}

	h := &Host{
		logger:   logger,
		window:   window,
		renderer: renderer,
	}

	if !cfg.Mute {
		h.beeper, err = newBeeper()
		if err != nil {
			// a missing audio device should not prevent playing
			logger.Warn("Audio device unavailable, continuing muted", log.Err(err))
		}
	}
	return h, nil
}

// Render draws a framebuffer snapshot, white on black, and presents it.
func (h *Host) Render(fb [chip8.FrameHeight][chip8.FrameWidth]bool) error {
	if err := h.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := h.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := h.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	for y := range fb {
		for x, on := range fb[y] {
			if !on {
				continue
			}
			rect := sdl.Rect{X: int32(x), Y: int32(y), W: 1, H: 1}
			if err := h.renderer.FillRect(&rect); err != nil {
				return fmt.Errorf("drawing pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	h.renderer.Present()
	return nil
}

// PumpEvents drains the SDL event queue, forwarding hex key transitions to
// the keypad. It returns false when the user quits via window close or
// Escape.
func (h *Host) PumpEvents(keys Keypad) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
			key, ok := hexKey(e.Keysym.Sym)
			if !ok {
				continue // not a keypad key
			}
			switch {
			case e.Type == sdl.KEYDOWN && e.Repeat == 0:
				keys.KeyDown(key)
			case e.Type == sdl.KEYUP:
				keys.KeyUp(key)
			}
		}
	}
	return true
}

// Beep keeps the tone state of the audio device in sync with the sound timer.
func (h *Host) Beep(on bool) {
	h.beeper.update(on)
}

// Close tears down the audio device, renderer and window.
func (h *Host) Close() {
	if h.beeper != nil {
		h.beeper.close()
	}
	if h.renderer != nil {
		_ = h.renderer.Destroy()
	}
	if h.window != nil {
		_ = h.window.Destroy()
	}
	sdl.Quit()
}
