package httpadapter

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

// requestID tags the request with the caller's X-Request-ID, or a fresh
// uuid, and stores a logger carrying that id in the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		l := log.With().Str("request_id", id).Logger()
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		ctx = l.WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the id attached to ctx by the router, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

// logFor returns the request logger, falling back to the global one for
// contexts that did not pass through requestID.
func logFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// accessLog writes one event per request. Server errors log at error
// level and client errors at warn so they survive a raised global level.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		lvl := zerolog.InfoLevel
		switch {
		case sw.status >= http.StatusInternalServerError:
			lvl = zerolog.ErrorLevel
		case sw.status >= http.StatusBadRequest:
			lvl = zerolog.WarnLevel
		}
		route := ""
		if cr := mux.CurrentRoute(r); cr != nil {
			route, _ = cr.GetPathTemplate()
		}

		logFor(r.Context()).WithLevel(lvl).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", route).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logFor(r.Context()).Error().
				Interface("panic", v).
				Str("path", r.URL.Path).
				Msg("handler panicked")
			writeJSON(w, r, http.StatusInternalServerError, false, msgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}
