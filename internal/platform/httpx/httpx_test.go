package httpx

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestChainRunsMiddlewareOutsideIn(t *testing.T) {
	t.Parallel()

	var trail []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		trail = append(trail, "handler")
		w.WriteHeader(http.StatusNoContent)
	}), tag("outer"), nil, tag("inner"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := strings.Join(trail, ","); got != "outer,inner,handler" {
		t.Fatalf("trail = %q", got)
	}
}

func TestChainWithoutHandlerIsNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "missing", incoming: "", keep: false},
		{name: "kept", incoming: "req-123", keep: true},
		{name: "too long", incoming: strings.Repeat("a", maxRequestIDLen+1), keep: false},
		{name: "unsafe characters", incoming: "req 123\x1b[31m", keep: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFrom(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if got := rr.Header().Get(RequestIDHeader); got != seen {
				t.Fatalf("response id = %q, context id = %q", got, seen)
			}
			if tc.keep {
				if seen != tc.incoming {
					t.Fatalf("id = %q, want %q", seen, tc.incoming)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("id %q is not a uuid: %v", seen, err)
			}
		})
	}
}

func TestRecoverPanicLogsRequestID(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RecoverPanic(log.New(&buffer, "", 0)), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	logLine := buffer.String()
	for _, marker := range []string{"panic=boom", "path=/panic", "request_id=req-123", "stack="} {
		if !strings.Contains(logLine, marker) {
			t.Fatalf("panic log missing %q: %q", marker, logLine)
		}
	}
}

func TestRecoverPanicRethrowsAbort(t *testing.T) {
	t.Parallel()

	h := RecoverPanic(log.New(&bytes.Buffer{}, "", 0))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recovered := recover(); recovered != http.ErrAbortHandler {
			t.Fatalf("recovered = %v, want http.ErrAbortHandler", recovered)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := WriteJSON(rr, http.StatusCreated, struct {
		Encoded string `json:"encoded"`
	}{Encoded: "grf1"})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content-type = %q", got)
	}
	if got := rr.Body.String(); got != "{\"encoded\":\"grf1\"}\n" {
		t.Fatalf("body = %q", got)
	}
}

func TestWriteJSONRejectsUnencodablePayload(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusOK, map[string]any{"f": func() {}}); err == nil {
		t.Fatal("expected encode error")
	}
	if rr.Body.Len() != 0 || rr.Header().Get("Content-Type") != "" {
		t.Fatalf("nothing should be written, got %q", rr.Body.String())
	}
}

func TestSeeOther(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	SeeOther(rr, httptest.NewRequest(http.MethodPost, "/toggle", nil), "/?g=grf1")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/?g=grf1" {
		t.Fatalf("Location = %q", got)
	}
}
