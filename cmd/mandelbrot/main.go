// Command mandelbrot renders the Mandelbrot set to an image file.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/i18n"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/image"
)

func main() {
	var (
		width    = flag.Int("width", mandelbrot.DefaultWidth, "image width")
		height   = flag.Int("height", mandelbrot.DefaultHeight, "image height")
		workers  = flag.Int("workers", mandelbrot.DefaultWorkers, "number of strips rendered in parallel (1-16)")
		output   = flag.String("output", "mandelbrot.png", "output file (.png, .jpg, .bmp, .tiff)")
		palette  = flag.String("palette", "reference", "palette: reference, spectrum or fire")
		centered = flag.Bool("centered", false, "center the set on the canvas instead of pixel (400, 300)")
		caption  = flag.Bool("caption", false, "stamp the worker count onto the image")
		thumb    = flag.Int("thumb", 0, "also write a thumbnail at most this many pixels wide")
		lang     = flag.String("lang", os.Getenv("LANG"), "language of status messages (en, es)")
		verbose  = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Parse()

	if *verbose {
		mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := []mandelbrot.Option{mandelbrot.WithWorkers(*workers)}
	switch *palette {
	case "reference":
	case "spectrum":
		opts = append(opts, mandelbrot.WithPalette(mandelbrot.SpectrumPalette))
	case "fire":
		opts = append(opts, mandelbrot.WithPalette(mandelbrot.FirePalette))
	default:
		log.Fatalf("Unknown palette %q", *palette)
	}
	if *centered {
		opts = append(opts, mandelbrot.WithCentered())
	}

	e, err := mandelbrot.NewEngine(opts...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := i18n.NewPrinter(languageTag(*lang))

	start := time.Now()
	img, err := e.Render(ctx, *width, *height)
	if err != nil {
		log.Fatal(p.Sprintf(i18n.RenderFailed, err))
	}
	elapsed := time.Since(start)

	out := img.ToRGBA()
	if *caption {
		if err := image.Caption(out, p.Sprintf(i18n.Workers, e.Workers())); err != nil {
			log.Fatalf("Failed to draw caption: %v", err)
		}
	}

	if err := image.Save(*output, out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	pixels := img.Width() * img.Height()
	p.Printf(i18n.Rendered, img.Width(), img.Height(), pixels, e.Workers(), elapsed.Round(time.Millisecond))
	p.Println()
	p.Printf(i18n.Saved, *output)
	p.Println()

	if *thumb > 0 {
		path := thumbnailPath(*output)
		if err := image.Save(path, image.Thumbnail(out, *thumb, *thumb)); err != nil {
			log.Fatalf("Failed to save thumbnail: %v", err)
		}
		p.Printf(i18n.Saved, path)
		p.Println()
	}
}

// languageTag turns a POSIX locale such as "es_ES.UTF-8" into a BCP 47 tag.
func languageTag(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// thumbnailPath inserts "_thumb" before the extension of path.
func thumbnailPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i <= strings.LastIndexByte(path, '/') {
		return path + "_thumb"
	}
	return path[:i] + "_thumb" + path[i:]
}
