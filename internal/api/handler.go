package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/eugenenazirov/novel-shell/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// CommandInitialData is the front-end command that returns the configuration snapshot.
const CommandInitialData = "get_initial_data"

// commandFunc produces the payload of an invoked command.
type commandFunc func(r *http.Request) (any, error)

// Handler serves the configuration snapshot to the front end.
type Handler struct {
	snapshot storage.Snapshot
	commands map[string]commandFunc

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler reading from the provided snapshot.
func NewHandler(snapshot storage.Snapshot, opts ...HandlerOption) *Handler {
	h := &Handler{
		snapshot: snapshot,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	h.commands = map[string]commandFunc{
		CommandInitialData: h.initialData,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Commands lists the names accepted by the invoke endpoint.
func (h *Handler) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	status := "ok"
	if _, err := h.snapshot.Get(); err != nil {
		status = "loading"
	}
	resp := healthResponse{
		Status:    status,
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInitialData(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, r, CommandInitialData)
}

func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, r, r.PathValue("command"))
}

func (h *Handler) runCommand(w http.ResponseWriter, r *http.Request, name string) {
	command, ok := h.commands[name]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown command", "command "+name+" is not registered")
		return
	}

	payload, err := command(r)
	if err != nil {
		if errors.Is(err, storage.ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, "Not ready", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) initialData(r *http.Request) (any, error) {
	_ = r
	return h.snapshot.Get()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
