package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/validate"
)

type parseRequest struct {
	URL string `json:"url"`
}

type parseResponse struct {
	Success    bool                     `json:"success"`
	Recipe     *domain.Recipe           `json:"recipe,omitempty"`
	Error      *domain.ParseError       `json:"error,omitempty"`
	Validation *domain.ValidationResult `json:"validation,omitempty"`
	DurationMs int64                    `json:"durationMs"`
}

func (s *Server) handleParseRequest(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		s.respondWithError(w, http.StatusBadRequest, "URL cannot be empty")
		return
	}

	classification := s.parser.ValidateURL(req.URL)
	if !classification.IsValid {
		s.respondWithJSON(w, http.StatusUnprocessableEntity, parseResponse{
			Success: false,
			Error:   &domain.ParseError{Code: "UNSUPPORTED_SITE", Message: classification.Err},
		})
		return
	}

	start := time.Now()
	result := s.parser.ParseURL(r.Context(), req.URL)
	elapsed := time.Since(start).Milliseconds()

	resp := parseResponse{
		Success:    result.Success,
		Recipe:     result.Recipe,
		Error:      result.Error,
		DurationMs: elapsed,
	}

	scraping := domain.ScrapingResult{
		URL:        req.URL,
		ParserName: classification.Source,
		Timestamp:  time.Now(),
		Duration:   elapsed,
		Success:    result.Success,
	}
	if result.Success {
		vr := validate.ValidateRecipe(*result.Recipe)
		resp.Validation = &vr
		scraping.ValidationResult = vr
	} else {
		scraping.Error = result.Error.Message
	}

	if err := s.monitor.LogScrapingResult(r.Context(), scraping); err != nil {
		s.logger.Warn("logging scraping result failed", zap.Error(err))
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	s.respondWithJSON(w, status, resp)
}

func (s *Server) handleValidateRequest(w http.ResponseWriter, r *http.Request) {
	urlParam := r.URL.Query().Get("url")
	if urlParam == "" {
		s.respondWithError(w, http.StatusBadRequest, "URL query parameter is required")
		return
	}
	s.respondWithJSON(w, http.StatusOK, s.parser.ValidateURL(urlParam))
}

func (s *Server) handleStatsRequest(w http.ResponseWriter, r *http.Request) {
	parserName := r.URL.Query().Get("parser")
	if parserName == "" {
		s.respondWithError(w, http.StatusBadRequest, "parser query parameter is required")
		return
	}

	stats, err := s.monitor.GetParserStats(r.Context(), parserName)
	if err != nil {
		s.logger.Error("failed to get parser stats", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve stats")
		return
	}
	if stats == nil {
		s.respondWithError(w, http.StatusNotFound, "No stats for parser "+parserName)
		return
	}
	s.respondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLogsRequest(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	logs, err := s.monitor.GetRecentScrapingLogs(r.Context(), limit, r.URL.Query().Get("parser"))
	if err != nil {
		s.logger.Error("failed to get scraping logs", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve logs")
		return
	}
	if logs == nil {
		logs = []domain.ScrapingResult{}
	}
	s.respondWithJSON(w, http.StatusOK, logs)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string)
	healthy := true

	if s.pgStore != nil {
		if err := s.pgStore.Ping(ctx); err != nil {
			healthStatus["postgres"] = "unhealthy"
			healthy = false
			s.logger.Error("health check failed for postgres", zap.Error(err))
		} else {
			healthStatus["postgres"] = "healthy"
		}
	}

	if s.redisStore != nil {
		if err := s.redisStore.Ping(ctx); err != nil {
			healthStatus["redis"] = "unhealthy"
			healthy = false
			s.logger.Error("health check failed for redis", zap.Error(err))
		} else {
			healthStatus["redis"] = "healthy"
		}
	}

	if !healthy {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
