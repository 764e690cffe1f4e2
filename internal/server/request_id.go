package server

import (
	"context"
	stdhttp "net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed from the request or filled with a new UUID.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

func requestIDFilter(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the id stored by the request id filter, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDValuer() log.Valuer {
	return func(ctx context.Context) any {
		return RequestID(ctx)
	}
}
