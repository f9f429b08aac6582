package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/brief"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// shutdownTimeout bounds graceful shutdown of the trigger API.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", c.Addr)

	select {
	case err := <-errc:
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter returns the trigger API.
//
//	POST /v1/messages          openAI message, runs the send pipeline in the background
//	POST /v1/summaries         {"type": "short"}, summarizes the active tab
//	GET  /v1/summaries/last    the last stored summary
func NewRouter(deps *Dependencies) http.Handler {
	h := &handler{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", h.postMessage)
		r.Post("/summaries", h.postSummary)
		r.Get("/summaries/last", h.getLastSummary)
	})
	return r
}

type handler struct {
	deps *Dependencies
}

func (h *handler) postMessage(w http.ResponseWriter, r *http.Request) {
	var req brief.OpenAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, brief.Errorf(brief.EINVALID, "invalid JSON body"))
		return
	}
	if req.Action != brief.ActionOpenAI {
		writeError(w, brief.Errorf(brief.EINVALID, "unsupported action %q", req.Action))
		return
	}
	if err := req.SummaryType.Validate(); err != nil {
		writeError(w, err)
		return
	}

	h.deps.Delivery.Dispatch(r.Context(), req)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *handler) postSummary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type brief.SummaryKind `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, brief.Errorf(brief.EINVALID, "invalid JSON body"))
		return
	}

	summary, err := h.deps.Summary.Summarize(r.Context(), body.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (h *handler) getLastSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.deps.Summaries.LastSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// statusCodes maps error codes to HTTP statuses. Unlisted codes are 500.
var statusCodes = map[string]int{
	brief.EINVALID:           http.StatusBadRequest,
	brief.ENOTFOUND:          http.StatusNotFound,
	brief.EMISSINGCREDENTIAL: http.StatusUnauthorized,
	brief.ENOACTIVETAB:       http.StatusConflict,
	brief.ENOTEXT:            http.StatusUnprocessableEntity,
	brief.EUNKNOWNDEST:       http.StatusBadRequest,
	brief.EHTTP:              http.StatusBadGateway,
}

func writeError(w http.ResponseWriter, err error) {
	status, ok := statusCodes[brief.ErrorCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{
		"code":  brief.ErrorCode(err),
		"error": brief.ErrorMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
