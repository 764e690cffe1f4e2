// Package server exposes the greeting over HTTP for local development.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/flarebyte/salute/internal/buildinfo"
	"github.com/flarebyte/salute/internal/greet"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// DefaultPort is used when neither --addr nor PORT is set.
const DefaultPort = "8000"

// Options configures NewHTTPServer.
type Options struct {
	Addr    string
	Version string
	// Now stamps /health responses. Defaults to time.Now.
	Now func() time.Time
}

// reply is a status code and a JSON body.
type reply struct {
	status int
	body   any
}

// request is what the logging middleware prints as args.
type request struct {
	method string
	path   string
	query  string
}

func (r request) String() string {
	if r.query == "" {
		return r.method + " " + r.path
	}
	return r.method + " " + r.path + "?" + r.query
}

type endpoint func(r *stdhttp.Request) reply

// NewHTTPServer builds the kratos HTTP server with every route registered.
func NewHTTPServer(o Options, logger log.Logger) *http.Server {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Version == "" {
		o.Version = buildinfo.EffectiveVersion()
	}
	opts := []http.ServerOption{
		http.Filter(requestIDFilter),
	}
	if o.Addr != "" {
		opts = append(opts, http.Address(o.Addr))
	}
	srv := http.NewServer(opts...)

	logger = log.With(logger, "request_id", requestIDValuer())
	mw := middleware.Chain(
		recovery.Recovery(),
		logging.Server(logger),
	)
	// Routes are matched in registration order; the prefix catches the rest.
	srv.Handle("/health", handler(mw, healthEndpoint(o.Now)))
	srv.Handle("/greet", handler(mw, greetEndpoint))
	srv.Handle("/", handler(mw, indexEndpoint(o.Version)))
	srv.HandlePrefix("/", handler(mw, notFoundEndpoint))
	return srv
}

func healthEndpoint(now func() time.Time) endpoint {
	return func(*stdhttp.Request) reply {
		return reply{stdhttp.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": now().UTC().Format(time.RFC3339),
		}}
	}
}

// greetEndpoint greets the name query parameter. A present but empty name is
// greeted as is; only a missing one falls back to the default.
func greetEndpoint(r *stdhttp.Request) reply {
	name := greet.DefaultName
	if vals, ok := r.URL.Query()["name"]; ok && len(vals) > 0 {
		name = vals[0]
	}
	return reply{stdhttp.StatusOK, map[string]string{"message": greet.Greet(name)}}
}

func indexEndpoint(version string) endpoint {
	return func(*stdhttp.Request) reply {
		return reply{stdhttp.StatusOK, map[string]string{
			"name":    buildinfo.Name,
			"version": version,
		}}
	}
}

func notFoundEndpoint(*stdhttp.Request) reply {
	return reply{stdhttp.StatusNotFound, map[string]string{"error": "Not Found"}}
}

// handler runs e through the middleware chain and writes its reply as JSON.
func handler(mw middleware.Middleware, e endpoint) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h := mw(func(ctx context.Context, req any) (any, error) {
			rep := e(r)
			if rep.status >= stdhttp.StatusBadRequest {
				return rep, errors.New(rep.status, "", fmt.Sprint(rep.body))
			}
			return rep, nil
		})
		out, err := h(r.Context(), request{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery})
		rep, ok := out.(reply)
		if !ok {
			code := int(errors.FromError(err).Code)
			rep = reply{code, map[string]string{"error": stdhttp.StatusText(code)}}
		}
		writeJSON(w, rep)
	})
}

func writeJSON(w stdhttp.ResponseWriter, rep reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_ = json.NewEncoder(w).Encode(rep.body)
}
