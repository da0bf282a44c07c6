// Command gbppu-demo drives the video package outside of a full emulator:
// it loads a save state (or starts from power-on), advances it by a given
// number of frames, optionally previews the result in the terminal with
// tcell, and can write the resulting state back out.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/jeebiecore/gbppu/jeebie/video"
)

// shadeChars renders the four DMG shades darkest-to-lightest as block
// characters, the way go-jeebie's terminal renderer maps shades to glyphs.
var shadeChars = []rune{'█', '▓', '▒', ' '}

func main() {
	app := cli.NewApp()
	app.Name = "gbppu-demo"
	app.Description = "Drives the Game Boy PPU core against a save state or from power-on"
	app.Usage = "gbppu-demo [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "state",
			Usage: "path to a PPU save state to load; starts from power-on if omitted",
		},
		cli.BoolFlag{
			Name:  "cgb",
			Usage: "treat the PPU (and any --state file) as CGB rather than DMG",
		},
		cli.IntFlag{
			Name:  "frames",
			Value: 1,
			Usage: "number of frames to advance before reporting",
		},
		cli.BoolFlag{
			Name:  "preview",
			Usage: "render the resulting frame to the terminal",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "path to write the resulting save state",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbppu-demo failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	frames := c.Int("frames")
	if frames < 0 {
		return errors.New("--frames must be non-negative")
	}

	p := video.New(video.Config{CGB: c.Bool("cgb")})

	if statePath := c.String("state"); statePath != "" {
		f, err := os.Open(statePath)
		if err != nil {
			return fmt.Errorf("opening state file: %w", err)
		}
		defer f.Close()

		if err := p.LoadState(f, c.Bool("cgb")); err != nil {
			return fmt.Errorf("loading state: %w", err)
		}
		slog.Info("loaded save state", "path", statePath)
	}

	p.WriteRegister(0xFF40, p.ReadRegister(0xFF40)|0x80) // force LCD on if it wasn't

	var irq uint8
	for i := 0; i < frames; i++ {
		irq |= p.TickFrame()
	}
	slog.Info("advanced frames", "count", frames, "interrupts", irq)

	if c.Bool("preview") {
		if err := preview(p.GetFrameBuffer()); err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
	}

	if outPath := c.String("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output state file: %w", err)
		}
		defer f.Close()

		if err := p.SaveState(f); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		slog.Info("wrote save state", "path", outPath)
	}

	return nil
}

// preview renders fb to the terminal using shaded block glyphs, scaled down
// to fit within the terminal's available rows and columns, then waits for a
// keypress before restoring the terminal.
func preview(fb *video.FrameBuffer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	cols, rows := screen.Size()
	scaleX := video.FramebufferWidth / max(cols, 1)
	scaleY := video.FramebufferHeight / max(rows, 1)
	if scaleX < 1 {
		scaleX = 1
	}
	if scaleY < 1 {
		scaleY = 1
	}

	for y := 0; y*scaleY < video.FramebufferHeight; y++ {
		for x := 0; x*scaleX < video.FramebufferWidth; x++ {
			pixel := fb.RGB(x*scaleX, y*scaleY)
			shade := shadeIndex(pixel)
			screen.SetContent(x, y, shadeChars[shade], nil, tcell.StyleDefault)
		}
	}
	screen.Show()

	for {
		ev := screen.PollEvent()
		if _, ok := ev.(*tcell.EventKey); ok {
			return nil
		}
	}
}

func shadeIndex(pixel uint32) int {
	r := pixel >> 24
	switch {
	case r < 0x40:
		return 0
	case r < 0x90:
		return 1
	case r < 0xD0:
		return 2
	default:
		return 3
	}
}
