package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatText:  "text/plain; charset=utf-8",
	pipeline.FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatGraph: "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	// Seed 0 is replaced by a random seed during validation, so only
	// requests that named a seed can be replayed from the cache.
	cacheable := opts.Seed != 0
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	var key string
	if cacheable {
		key = artifactKey(opts, format)
		data, ok, err := s.cfg.Cache.Get(r.Context(), key)
		if err != nil {
			s.cfg.Logger.Warn("cache read failed", "id", RequestIDFromContext(r.Context()), "err", err)
		}
		if ok {
			s.writeArtifact(w, format, opts.Seed, data, "hit")
			return
		}
	}

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := result.Artifacts[format]
	if cacheable {
		if err := s.cfg.Cache.Set(r.Context(), key, data, s.cfg.CacheTTL); err != nil {
			s.cfg.Logger.Warn("cache write failed", "id", RequestIDFromContext(r.Context()), "err", err)
		}
	}
	s.writeArtifact(w, format, result.Seed, data, "miss")
}

func (s *Server) writeArtifact(w http.ResponseWriter, format string, seed uint64, data []byte, cacheStatus string) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderSeed, strconv.FormatUint(seed, 10))
	w.Header().Set(HeaderCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// artifactKey identifies the bytes produced by opts for format. opts must
// already be validated so defaults and the parsed palette are filled in.
func artifactKey(opts pipeline.Options, format string) string {
	wall, floor := opts.Palette().Hex()
	return cache.ArtifactKey(cache.ArtifactKeyOpts{
		Height:      opts.Height,
		Width:       opts.Width,
		Seed:        opts.Seed,
		Format:      format,
		FrameWidth:  opts.FrameWidth,
		FrameHeight: opts.FrameHeight,
		Margin:      opts.Margin,
		Scale:       opts.Scale,
		Wall:        wall,
		Floor:       floor,
		Title:       opts.Title,
		Labels:      opts.Labels,
	})
}

// optionsFromQuery overlays query parameters on the server defaults.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = s.cfg.Logger

	var err error
	intParam := func(name string, dst *int) {
		if v := q.Get(name); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, perr, "query parameter %s", name)
				return
			}
			*dst = n
		}
	}
	floatParam := func(name string, set func(float64)) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, perr, "query parameter %s", name)
				return
			}
			set(f)
		}
	}

	intParam("height", &opts.Height)
	intParam("width", &opts.Width)
	for name, v := range map[string]int{"height": opts.Height, "width": opts.Width} {
		if q.Has(name) && v < 1 && err == nil {
			err = apperrors.New(apperrors.ErrCodeInvalidDimensions, "%s must be at least 1, got %d", name, v)
		}
	}
	floatParam("frame_width", func(f float64) { opts.FrameWidth = f })
	floatParam("frame_height", func(f float64) { opts.FrameHeight = f })
	floatParam("margin", opts.WithMargin)
	if v := q.Get("seed"); v != "" && err == nil {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, perr, "query parameter seed")
		}
		opts.Seed = seed
	}
	if v := q.Get("labels"); v != "" && err == nil {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, perr, "query parameter labels")
		}
		opts.Labels = b
	}
	if err != nil {
		return pipeline.Options{}, err
	}

	if v := q.Get("merge"); v != "" {
		opts.Merge = v
	}
	if v := q.Get("wall"); v != "" {
		opts.Wall = v
	}
	if v := q.Get("floor"); v != "" {
		opts.Floor = v
	}

	if opts.Height > 0 && opts.Width > 0 && opts.Height > s.cfg.MaxCells/opts.Width {
		return pipeline.Options{}, apperrors.New(apperrors.ErrCodeInvalidDimensions,
			"%dx%d maze exceeds the server limit of %d cells", opts.Height, opts.Width, s.cfg.MaxCells)
	}
	return opts, nil
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status: validation errors are the
// client's fault, everything else is the server's.
func statusFor(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:      code,
		Message:   apperrors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}
