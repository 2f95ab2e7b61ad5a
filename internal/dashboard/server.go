package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"optionflow/internal/deribit/memorystore"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server serves the dashboard page, the charts, the JSON model and the live
// update stream from the latest model in the store.
type Server struct {
	store    *memorystore.ModelStore
	logger   *zap.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
}

func NewServer(store *memorystore.ModelStore, logger *zap.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}

	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	s.router.HandleFunc("/charts", s.handleCharts).Methods(http.MethodGet)
	s.router.HandleFunc("/api/model", s.handleModel).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleStream).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if m, ok := s.store.Get(); ok {
		if err := RenderPage(&buf, &m); err != nil {
			s.serverError(w, "render page", err)
			return
		}
	} else if err := RenderPage(&buf, nil); err != nil {
		s.serverError(w, "render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Get()
	if !ok {
		http.Error(w, "model not ready", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := RenderCharts(&buf, m); err != nil {
		s.serverError(w, "render charts", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Get()
	if !ok {
		http.Error(w, "model not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(NewModelView(m)); err != nil {
		s.logger.Warn("failed to encode model", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, ready := s.store.Get()
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ready": ready})
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	s.logger.Error("dashboard handler failed", zap.String("step", what), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
