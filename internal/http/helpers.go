package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"nutrilog/internal/core"
	"nutrilog/internal/ledger"
	applog "nutrilog/internal/log"
	"nutrilog/internal/macro"
	"nutrilog/internal/middleware/trace"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
	// Raw carries the unparsable oracle response when one exists, so a
	// client can show the user what came back instead of a silent failure.
	Raw string `json:"raw,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Transient store
// failures surface as 503 so clients can retry; validation failures are
// terminal 4xx.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := applog.FromContext(r.Context())
	var (
		unparsable  *macro.UnparsableEstimateError
		unavailable *ledger.StoreUnavailableError
	)
	switch {
	case errors.As(err, &unparsable):
		logger.WarnContext(r.Context(), "Unparsable oracle response",
			applog.FieldError, unparsable.Reason, applog.FieldPath, r.URL.Path)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: unparsable.Reason, Raw: unparsable.Raw})
	case errors.As(err, &unavailable):
		logger.ErrorContext(r.Context(), "Store unavailable",
			applog.FieldError, err.Error(), applog.FieldPath, r.URL.Path)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	case errors.Is(err, core.ErrMalformedDate):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrNegativeKcal),
		errors.Is(err, core.ErrInvalidWeight):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, macro.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.structured.LogError(r.Context(), "Request failed", err,
			applog.ComponentHTTP, applog.OpRead, applog.NewFields().WithRequestID(requestIDFrom(r)))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected trailing data in request body")
	}
	_, _ = io.Copy(io.Discard, body)
	return nil
}

func requestIDFrom(r *http.Request) string {
	return trace.GetRequestID(r.Context())
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive: %d", n)
	}
	return n, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 {
			return -1
		}
		return r
	}, s)
}
