package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/models"
	"github.com/gosom/cheap-eats-nyc/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q models.SearchQuery

	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		renderJSON(w, http.StatusUnprocessableEntity,
			models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})

		return
	}

	resp, err := s.searcher.Submit(r.Context(), q)
	if err != nil {
		if errors.Is(err, search.ErrSuperseded) {
			renderJSON(w, http.StatusConflict,
				models.APIError{Code: http.StatusConflict, Message: "superseded by a newer search"})

			return
		}

		renderJSON(w, http.StatusUnprocessableEntity,
			models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})

		return
	}

	renderJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePantries(w http.ResponseWriter, r *http.Request) {
	rows, err := s.pantries.Fetch(r.Context())
	if err != nil {
		s.logger.Error("pantry fetch failed", zap.Error(err))

		renderJSON(w, http.StatusBadGateway,
			models.APIError{Code: http.StatusBadGateway, Message: "food pantry feed unavailable"})

		return
	}

	renderJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGeolocate(w http.ResponseWriter, r *http.Request) {
	var req models.GeolocateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusUnprocessableEntity,
			models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})

		return
	}

	pos, err := search.ResolveGeolocation(req)
	if err != nil {
		var gerr *search.GeolocationError
		if errors.As(err, &gerr) {
			renderJSON(w, http.StatusOK, map[string]string{
				"status":  "error",
				"code":    gerr.Code,
				"message": gerr.Message,
			})

			return
		}

		renderJSON(w, http.StatusUnprocessableEntity,
			models.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()})

		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"origin": pos,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
