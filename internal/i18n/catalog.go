// Package i18n holds the translations of user-facing strings.
//
// Keys are the English format strings; a printer for an unsupported
// language falls back to them.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	Title        = "Mandelbrot Set"
	Workers      = "Workers: %d"
	Repainting   = "Repainting the Mandelbrot set with %d workers"
	Rendered     = "Rendered %d×%d (%d pixels) with %d workers in %v"
	Saved        = "Saved %s"
	RenderFailed = "Render failed: %v"
	Controls     = "Up/Down: workers  R: repaint  Esc: quit"
)

// Supported lists the languages with a translation. The first entry is the
// fallback.
var Supported = []language.Tag{
	language.English,
	language.Spanish,
}

var spanish = map[string]string{
	Title:        "Conjunto de Mandelbrot",
	Workers:      "Trabajadores: %d",
	Repainting:   "Repintando el Mandelbrot con %d trabajadores",
	Rendered:     "Renderizado %d×%d (%d píxeles) con %d trabajadores en %v",
	Saved:        "Guardado %s",
	RenderFailed: "Error al renderizar: %v",
	Controls:     "Arriba/Abajo: trabajadores  R: repintar  Esc: salir",
}

var matcher = language.NewMatcher(Supported)

func init() {
	for key, msg := range spanish {
		if err := message.SetString(language.Spanish, key, msg); err != nil {
			panic(err)
		}
	}
}

// Match returns the supported language closest to the BCP 47 tags in
// accept, such as "es-MX" or "en-US,es;q=0.8". Unknown or empty input
// yields English.
func Match(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, i, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[i]
}

// NewPrinter returns a printer for the language matched from accept.
func NewPrinter(accept string) *message.Printer {
	return message.NewPrinter(Match(accept))
}
