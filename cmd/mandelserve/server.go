package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/cache"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/i18n"
	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez/internal/image"
)

// maxDimension caps requested image sides.
const maxDimension = 4096

// maxCacheBytes bounds the encoded renders kept in memory.
const maxCacheBytes = 256 << 20

// renderKey identifies an encoded render. The worker count is not part of
// the key: it never changes the pixels.
type renderKey struct {
	width, height int
	format        image.Format
}

type server struct {
	engine   *mandelbrot.Engine
	registry *prometheus.Registry
	renders  *cache.Cache[renderKey, []byte]
}

// newServer creates the HTTP handlers around e. cacheEntries bounds the
// number of cached encoded renders; 0 disables caching.
func newServer(e *mandelbrot.Engine, reg *prometheus.Registry, cacheEntries int) *server {
	s := &server{engine: e, registry: reg}
	if cacheEntries > 0 {
		s.renders = cache.New[renderKey, []byte](cacheEntries, maxCacheBytes, func(b []byte) int64 {
			return int64(len(b))
		})
		reg.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: mandelbrot.MetricsNamespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Renders served from the cache.",
			}, func() float64 { return float64(s.renders.Stats().Hits) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: mandelbrot.MetricsNamespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Renders not found in the cache.",
			}, func() float64 { return float64(s.renders.Stats().Misses) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: mandelbrot.MetricsNamespace,
				Subsystem: "cache",
				Name:      "bytes",
				Help:      "Size of the cached encoded renders.",
			}, func() float64 { return float64(s.renders.Stats().Cost) }),
		)
	}
	return s
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/mandelbrot.png", s.handlePNG)
	mux.HandleFunc("/image", s.handleImage)
	mux.HandleFunc("/workers", s.handleWorkers)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	return mux
}

type workersResponse struct {
	Workers int `json:"workers"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

type workersRequest struct {
	Workers int `json:"workers"`
}

// handleWorkers reports (GET) or changes (PUT) the worker count.
func (s *server) handleWorkers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req workersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := s.engine.SetWorkers(req.Workers); err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(workersResponse{
		Workers: s.engine.Workers(),
		Min:     mandelbrot.MinWorkers,
		Max:     mandelbrot.MaxWorkers,
	})
}

func (s *server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, image.FormatPNG)
}

func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	format := image.FormatPNG
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := image.ParseFormat(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}
	s.render(w, r, format)
}

// render parses width, height and workers from the query, renders and
// writes the encoded image.
func (s *server) render(w http.ResponseWriter, r *http.Request, format image.Format) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	req := mandelbrot.RenderRequest{Workers: s.engine.Workers()}
	var err error
	if req.Width, err = queryInt(q.Get("width"), mandelbrot.DefaultWidth); err != nil {
		http.Error(w, "width: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Height, err = queryInt(q.Get("height"), mandelbrot.DefaultHeight); err != nil {
		http.Error(w, "height: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Workers, err = queryInt(q.Get("workers"), req.Workers); err != nil {
		http.Error(w, "workers: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Width > maxDimension || req.Height > maxDimension {
		http.Error(w, fmt.Sprintf("image larger than %dx%d", maxDimension, maxDimension), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := renderKey{width: req.Width, height: req.Height, format: format}
	if data, ok := s.cached(key); ok {
		w.Header().Set("X-Cache", "hit")
		writeImage(w, format, data)
		return
	}

	img, err := s.engine.RenderWith(r.Context(), req)
	if err != nil {
		p := i18n.NewPrinter(r.Header.Get("Accept-Language"))
		http.Error(w, p.Sprintf(i18n.RenderFailed, err), statusFor(err))
		return
	}

	data, err := image.EncodeToBytes(img.ToRGBA(), format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if s.renders != nil {
		s.renders.Add(key, data)
	}
	w.Header().Set("X-Cache", "miss")
	w.Header().Set("X-Workers", strconv.Itoa(req.Workers))
	writeImage(w, format, data)
}

func (s *server) cached(key renderKey) ([]byte, bool) {
	if s.renders == nil {
		return nil, false
	}
	return s.renders.Get(key)
}

func writeImage(w http.ResponseWriter, format image.Format, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func queryInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mandelbrot.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, mandelbrot.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
