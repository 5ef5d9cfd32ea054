package httpapi

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/logging"
	"todo-api/internal/services"
)

// Options configures the middleware wrapped around the item routes
type Options struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// CORS is applied when non-nil.
	CORS *CORSConfig
}

// Server routes HTTP requests to the item service
type Server struct {
	service services.ItemService
	logger  *slog.Logger
	handler http.Handler
}

// NewServer builds the item API handler
func NewServer(service services.ItemService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	srv := &Server{
		service: service,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealth)

	mux.HandleFunc("GET /items", srv.handleListItems)
	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PUT /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("DELETE /items/{id}", srv.handleDeleteItem)

	var h http.Handler = mux
	h = WithTimeout(opts.RequestTimeout)(h)
	if opts.CORS != nil {
		h = WithCORS(opts.CORS)(h)
	}
	h = WithLogging(logger)(h)
	h = WithRequestID(h)
	h = WithRecover(logger)(h)
	srv.handler = h

	return srv
}

// NewServerFromConfig builds the item API handler from the server section of cfg
func NewServerFromConfig(service services.ItemService, cfg config.ServerConfig, logger *slog.Logger) *Server {
	opts := Options{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	}
	if cfg.CORS {
		opts.CORS = CORSAllowAll()
	}
	return NewServer(service, opts)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}
