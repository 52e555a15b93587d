package server

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/evaluator"
)

type errorResponse struct {
	Error string           `json:"error"`
	Type  errors.ErrorType `json:"type"`
}

// evalHandler serves GET /v1/eval?function=sin&order=15&x=1.5707963&mode=float.
func evalHandler(e *evaluator.Evaluator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRequest(r)
		if err != nil {
			writeError(w, log, err)
			return
		}
		res, err := e.Evaluate(req)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, res)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func parseRequest(r *http.Request) (evaluator.Request, error) {
	q := r.URL.Query()
	req := evaluator.Request{
		Function: evaluator.Function(q.Get("function")),
		Mode:     evaluator.Mode(q.Get("mode")),
	}
	if s := q.Get("order"); s != "" {
		order, err := strconv.ParseUint(s, 10, 0)
		if err != nil {
			return req, errors.Invalid("order must be a non-negative integer, got %q", s)
		}
		req.Order = uint(order)
	}
	if s := q.Get("x"); s != "" {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return req, errors.Invalid("x must be a number, got %q", s)
		}
		req.X = x
	}
	return req, nil
}

func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.InvalidInputError:
		return http.StatusBadRequest
	case errors.OverflowError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("evaluation failed")
	}
	writeJSON(w, log, status, errorResponse{Error: err.Error(), Type: errors.TypeOf(err)})
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Debug().Err(err).Msg("failed to write response")
	}
}
