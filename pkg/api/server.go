// Package api exposes the HTTP surface for activities, users and
// recommendations.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/activity"
	"github.com/fitsage/server/pkg/recommendation"
	"github.com/fitsage/server/pkg/user"
)

type Server struct {
	router          chi.Router
	activities      *activity.Service
	users           *user.Service
	recommendations *recommendation.QueryService
	logger          *slog.Logger
}

func NewServer(activities *activity.Service, users *user.Service, recs *recommendation.QueryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:          chi.NewRouter(),
		activities:      activities,
		users:           users,
		recommendations: recs,
		logger:          logger,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/api/activities", s.handleTrackActivity)
	s.router.Get("/api/activities", s.handleListActivities)
	s.router.Get("/api/activities/{activityId}", s.handleGetActivity)

	s.router.Get("/api/recommendations/user/{userId}", s.handleUserRecommendations)
	s.router.Get("/api/recommendations/activity/{activityId}", s.handleActivityRecommendation)

	s.router.Post("/api/users/register", s.handleRegister)
	s.router.Get("/api/users/{userId}", s.handleGetUser)
	s.router.Get("/api/users/{userId}/validate", s.handleValidateUser)
}

func (s *Server) handleTrackActivity(w http.ResponseWriter, r *http.Request) {
	var req activity.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	act, err := s.activities.TrackActivity(r.Context(), &req)
	if err != nil {
		var verr *activity.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusBadRequest, verr)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, act)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("userId query parameter is required"))
		return
	}

	activities, err := s.activities.GetUserActivities(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, activities)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	act, err := s.activities.GetActivity(r.Context(), chi.URLParam(r, "activityId"))
	if err != nil {
		if shared.IsNotFound(err) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, act)
}

func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.recommendations.GetUserRecommendations(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleActivityRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recommendations.GetActivityRecommendation(r.Context(), chi.URLParam(r, "activityId"))
	if err != nil {
		if shared.IsNotFound(err) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	u, err := s.users.Register(r.Context(), &req)
	if err != nil {
		var verr *user.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusBadRequest, verr)
			return
		}
		var taken *user.ErrEmailTaken
		if errors.As(err, &taken) {
			s.writeError(w, http.StatusConflict, taken)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetProfile(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		if shared.IsNotFound(err) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleValidateUser(w http.ResponseWriter, r *http.Request) {
	ok, err := s.users.Exists(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
