package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/littermap-org/littermap/dataset"
	"github.com/littermap-org/littermap/engine"
	"github.com/littermap-org/littermap/render"
)

// handleOptions returns the selectable option lists.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	tables, ok := s.tables(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"years":    engine.Years(tables),
		"counties": engine.Counties(tables),
		"metrics":  engine.Metrics(),
	})
}

// handleDashboard runs one full interaction pass for the query selection.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tables, ok := s.tables(w, r)
	if !ok {
		return
	}
	sel, err := selectionFromQuery(tables, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dash, err := engine.BuildDashboard(tables, sel, engine.WithTopN(s.topN))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// handleChart renders one cartesian chart spec as PNG.
// Names: trend.png, monthly.png, growth.png, top.png.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	tables, ok := s.tables(w, r)
	if !ok {
		return
	}
	sel, err := selectionFromQuery(tables, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dash, err := engine.BuildDashboard(tables, sel, engine.WithTopN(s.topN))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width := intParam(r.URL.Query(), "width", 0)
	height := intParam(r.URL.Query(), "height", 0)

	var png []byte
	switch chi.URLParam(r, "name") {
	case "trend.png":
		png, err = render.Trend(dash.YearlyTrend, width, height)
	case "monthly.png":
		png, err = render.Trend(dash.MonthlyTrend, width, height)
	case "growth.png":
		png, err = render.Growth(dash.Growth, width, height)
	case "top.png":
		png, err = render.TopCounties(dash.TopCounties, width, height)
	default:
		writeError(w, http.StatusNotFound, "unknown chart")
		return
	}
	if errors.Is(err, render.ErrNoData) {
		writeError(w, http.StatusNotFound, "no data available for this selection")
		return
	}
	if err != nil {
		s.log.Error("chart render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleCacheClear drops the loaded snapshot; the next request reloads.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.cache.Clear()
	s.log.Info("dataset cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

// tables resolves the cached snapshot, mapping load failures to HTTP errors.
func (s *Server) tables(w http.ResponseWriter, r *http.Request) (*dataset.Tables, bool) {
	tables, err := s.cache.Tables(r.Context())
	if err != nil {
		var fatal *dataset.FatalLoadError
		if errors.As(err, &fatal) {
			s.log.Error("dataset load failed", zap.String("path", fatal.Path), zap.Error(fatal.Err))
		} else {
			s.log.Error("dataset load failed", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return nil, false
	}
	return tables, true
}

// selectionFromQuery overlays query parameters on the default selection.
func selectionFromQuery(t *dataset.Tables, q url.Values) (engine.Selection, error) {
	sel, ok := engine.DefaultSelection(t)
	if !ok {
		return engine.Selection{}, errors.New("dataset holds no selectable data")
	}

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return engine.Selection{}, errors.New("year must be an integer")
		}
		sel.Year = year
	}
	if v := q.Get("county"); v != "" {
		sel.County = v
	}
	if v := q.Get("metric"); v != "" {
		metric, err := engine.ParseMetric(v)
		if err != nil {
			return engine.Selection{}, err
		}
		sel.Metric = metric
	}
	return sel, nil
}

func intParam(q url.Values, name string, def int) int {
	if v := q.Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
