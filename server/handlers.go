package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/rushteam/eventrec/pkg/logging"
)

// recommendationsRequest 是 /recommendations 的查询参数。
type recommendationsRequest struct {
	UserID string `validate:"omitempty,max=128"`
	Limit  int    `validate:"min=1"`
}

// validationIssue 是单个参数的校验错误，loc 形如 ["query", "limit"]。
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type errorResponse struct {
	Detail any `json:"detail"`
}

var queryNames = map[string]string{
	"UserID": "user_id",
	"Limit":  "limit",
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := recommendationsRequest{
		UserID: q.Get("user_id"),
		Limit:  s.opts.DefaultLimit,
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: []validationIssue{{
				Loc:  []string{"query", "limit"},
				Msg:  "Input should be a valid integer",
				Type: "int_parsing",
			}}})
			return
		}
		req.Limit = n
	}
	if issues := s.validateRequest(req); len(issues) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: issues})
		return
	}

	res, err := s.rec.Recommend(r.Context(), req.UserID, req.Limit)
	if err != nil {
		logger := logging.From(r.Context(), s.opts.Logger)
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("recommendation failed")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Detail: "Recommendation service unavailable: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) validateRequest(req recommendationsRequest) []validationIssue {
	var issues []validationIssue
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []validationIssue{{Loc: []string{"query"}, Msg: err.Error(), Type: "value_error"}}
		}
		for _, fe := range verrs {
			issues = append(issues, fieldIssue(queryNames[fe.Field()], fe.Tag(), fe.Param()))
		}
	}
	if err := s.validate.Var(req.Limit, "max="+strconv.Itoa(s.opts.MaxLimit)); err != nil {
		issues = append(issues, fieldIssue("limit", "max", strconv.Itoa(s.opts.MaxLimit)))
	}
	return issues
}

func fieldIssue(name, tag, param string) validationIssue {
	issue := validationIssue{Loc: []string{"query", name}, Type: "value_error"}
	switch {
	case tag == "min" && name == "limit":
		issue.Msg, issue.Type = "Input should be greater than or equal to "+param, "greater_than_equal"
	case tag == "max" && name == "limit":
		issue.Msg, issue.Type = "Input should be less than or equal to "+param, "less_than_equal"
	case tag == "max":
		issue.Msg, issue.Type = "String should have at most "+param+" characters", "string_too_long"
	default:
		issue.Msg = "Invalid value (" + tag + ")"
	}
	return issue
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
