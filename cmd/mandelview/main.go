// Command mandelview shows the Mandelbrot set in a window.
//
// Up/Down (or +/-) change the number of workers between 1 and 16 and
// re-render. R blanks the window and repaints it one second later.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/i18n"
)

const (
	windowWidth  = mandelbrot.DefaultWidth
	windowHeight = mandelbrot.DefaultHeight

	// eventTimeout bounds how long the loop waits for input before it
	// checks for finished renders, in milliseconds.
	eventTimeout = 16
)

func sdlInit(title string) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		windowWidth, windowHeight, sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func main() {
	var (
		workers = flag.Int("workers", mandelbrot.DefaultWorkers, "initial number of workers (1-16)")
		lang    = flag.String("lang", os.Getenv("LANG"), "language of window text (en, es)")
		verbose = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Parse()

	if *verbose {
		mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	p := i18n.NewPrinter(*lang)

	e, err := mandelbrot.NewEngine(mandelbrot.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer e.Close()

	window, renderer, err := sdlInit(p.Sprintf(i18n.Title))
	if err != nil {
		log.Fatalf("Failed to initialize SDL: %v", err)
	}
	defer sdlClose(window, renderer)

	// ABGR8888 is R, G, B, A in memory on little-endian hosts, matching
	// the engine's RGBA layout.
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		windowWidth, windowHeight,
	)
	if err != nil {
		log.Fatalf("Failed to create texture: %v", err)
	}
	defer func() { _ = texture.Destroy() }()

	c := newController(e, windowWidth, windowHeight)
	defer c.close()

	setTitle := func() {
		window.SetTitle(p.Sprintf(i18n.Title) + " | " + p.Sprintf(i18n.Workers, e.Workers()))
	}
	setTitle()
	log.Print(p.Sprintf(i18n.Controls))
	c.requestRender()

	hasImage := false
	for run := true; run; {
		if ev := sdl.WaitEventTimeout(eventTimeout); ev != nil {
			switch t := ev.(type) {
			case *sdl.QuitEvent:
				run = false
			case *sdl.KeyboardEvent:
				if t.Type != sdl.KEYDOWN {
					break
				}
				switch t.Keysym.Sym {
				case sdl.K_ESCAPE:
					run = false
				case sdl.K_UP, sdl.K_PLUS, sdl.K_KP_PLUS, sdl.K_EQUALS:
					if c.changeWorkers(1) {
						setTitle()
						log.Print(p.Sprintf(i18n.Repainting, e.Workers()))
					}
				case sdl.K_DOWN, sdl.K_MINUS, sdl.K_KP_MINUS:
					if c.changeWorkers(-1) {
						setTitle()
						log.Print(p.Sprintf(i18n.Repainting, e.Workers()))
					}
				case sdl.K_r:
					c.flash()
				}
			}
		}

		select {
		case r := <-c.results:
			c.finished()
			if r.err != nil {
				// Keep showing the previous image.
				log.Print(p.Sprintf(i18n.RenderFailed, r.err))
				break
			}
			if err := upload(texture, r.img); err != nil {
				log.Printf("Failed to update texture: %v", err)
				break
			}
			hasImage = true
		case <-c.repaint:
			log.Print(p.Sprintf(i18n.Repainting, e.Workers()))
			c.flashDone()
		default:
		}

		_ = renderer.SetDrawColor(0, 0, 0, 255)
		_ = renderer.Clear()
		if hasImage && !c.flashing {
			_ = renderer.Copy(texture, nil, nil)
		}
		renderer.Present()
	}
}

// upload copies img into a streaming texture of the same size.
func upload(texture *sdl.Texture, img *mandelbrot.Image) error {
	data, pitch, err := texture.Lock(nil)
	if err != nil {
		return err
	}
	defer texture.Unlock()

	row := img.Stride()
	for y := range img.Height() {
		copy(data[y*pitch:y*pitch+row], img.Row(y))
	}
	return nil
}
