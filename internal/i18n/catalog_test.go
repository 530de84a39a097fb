package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"es", language.Spanish},
		{"es-MX", language.Spanish},
		{"en-GB", language.English},
		{"fr-CA,es;q=0.8", language.Spanish},
		{"", language.English},
		{"!!", language.English},
	}

	for _, tt := range tests {
		if got := Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewPrinter_Spanish(t *testing.T) {
	p := NewPrinter("es")
	if got := p.Sprintf(Title); got != "Conjunto de Mandelbrot" {
		t.Errorf("Title = %q", got)
	}
	if got := p.Sprintf(Repainting, 5); got != "Repintando el Mandelbrot con 5 trabajadores" {
		t.Errorf("Repainting = %q", got)
	}
}

func TestNewPrinter_English(t *testing.T) {
	p := NewPrinter("en")
	if got := p.Sprintf(Workers, 16); got != "Workers: 16" {
		t.Errorf("Workers = %q", got)
	}
	if got := p.Sprintf("%d", 1234567); got != "1,234,567" {
		t.Errorf("grouped number = %q", got)
	}
}

func TestCatalogComplete(t *testing.T) {
	for _, key := range []string{Title, Workers, Repainting, Rendered, Saved, RenderFailed, Controls} {
		if _, ok := spanish[key]; !ok {
			t.Errorf("missing Spanish translation for %q", key)
		}
	}
}
