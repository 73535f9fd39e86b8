// Package web serves the HTTP control API and a small status page.
package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"lumen/datasource"
	"lumen/display"
	"lumen/internal/buildinfo"
	"lumen/layout"
)

// Server exposes a display manager over HTTP.
type Server struct {
	mgr *display.Manager
	log *slog.Logger
	mux *http.ServeMux
}

func NewServer(mgr *display.Manager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{mgr: mgr, log: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/data", s.handleData)
	s.mux.HandleFunc("GET /api/datasources", s.handleDataSources)
	s.mux.HandleFunc("GET /api/layout", s.handleActiveLayout)
	s.mux.HandleFunc("GET /api/layouts", s.handleLayoutList)
	s.mux.HandleFunc("GET /api/layouts/{name}", s.handleLayoutGet)
	s.mux.HandleFunc("POST /api/layouts/{name}", s.handleLayoutSave)
	s.mux.HandleFunc("POST /api/layout/load/{name}", s.handleLayoutLoad)
	s.mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	s.mux.HandleFunc("POST /api/send", s.handleSend)
	s.mux.HandleFunc("POST /api/brightness/{level}", s.handleBrightness)
	s.mux.HandleFunc("GET /api/preview", s.handlePreview)
	s.mux.HandleFunc("GET /api/preview/base64", s.handlePreviewBase64)
}

// Handler returns the server's HTTP handler with request logging attached.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("web api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		display.Status
		Version string `json:"version"`
	}{s.mgr.Status(), buildinfo.Short()})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mgr.Sources().Snapshot())
}

func (s *Server) handleDataSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"types":   datasource.Types(),
		"sources": s.mgr.Sources().Info(),
	})
}

func (s *Server) handleActiveLayout(w http.ResponseWriter, r *http.Request) {
	l, name := s.mgr.Layout()
	if l == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no layout loaded"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "layout": l})
}

func (s *Server) handleLayoutList(w http.ResponseWriter, r *http.Request) {
	names, err := s.mgr.LayoutNames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": names})
}

func (s *Server) handleLayoutGet(w http.ResponseWriter, r *http.Request) {
	l, err := s.mgr.ReadLayout(r.PathValue("name"))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, fmt.Errorf("layout not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLayoutSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	l, err := layout.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	name := r.PathValue("name")
	if err := s.mgr.SaveLayout(name, l); err != nil {
		var cfgErr *layout.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Saving the active layout re-activates it so the device updates.
	if _, active := s.mgr.Layout(); active == name {
		if err := s.mgr.LoadLayout(name); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": name})
}

func (s *Server) handleLayoutLoad(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.mgr.LoadLayout(name); err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, fmt.Errorf("layout not found"))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"loaded": name})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.mgr.RefreshData(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"refreshed": true})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.Render(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sent": true})
}

func (s *Server) handleBrightness(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.PathValue("level"))
	if err != nil || level < 0 || level > 100 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("brightness must be 0..100"))
		return
	}
	if err := s.mgr.SetBrightness(r.Context(), level); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"brightness": level})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	buf := s.mgr.LastFrame()
	if buf == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no frame rendered yet"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, buf.Image()); err != nil {
		s.log.Error("preview encode failed", "error", err)
	}
}

func (s *Server) handlePreviewBase64(w http.ResponseWriter, r *http.Request) {
	buf := s.mgr.LastFrame()
	if buf == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no frame rendered yet"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"width":  64,
		"height": 64,
		"rgb":    base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}
