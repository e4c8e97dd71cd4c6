// Package web exposes the search service over HTTP.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/fetchers"
	"github.com/gosom/cheap-eats-nyc/search"
)

type Server struct {
	srv      *http.Server
	searcher *search.Searcher
	pantries *fetchers.Pantries
	logger   *zap.Logger
}

func NewServer(addr string, searcher *search.Searcher, pantries *fetchers.Pantries, logger *zap.Logger) *Server {
	ans := Server{
		searcher: searcher,
		pantries: pantries,
		logger:   logger,
	}

	ans.srv = &http.Server{
		Addr:              addr,
		Handler:           ans.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return &ans
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(s.logMiddleware)

	r.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/api/pantries", s.handlePantries).Methods(http.MethodGet)
	r.HandleFunc("/api/geolocate", s.handleGeolocate).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return r
}

func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))

	err := s.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func renderJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(data)
}
