package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-demo/internal/config"
)

type CtxKey int

const (
	CtxUploaderClaims CtxKey = iota
)

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	return strings.TrimSpace(token), ok && token != ""
}

// RequireToken rejects requests without a valid uploader token. A nil jwt
// rejects every request.
func RequireToken(logger *slog.Logger, jwt *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwt == nil {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("archive is read-only"))
				return
			}
			token, ok := bearerToken(r)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := jwt.ParseUploaderClaims(token)
			if err != nil {
				logger.Debug("rejected uploader token", slog.Any("error", err))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxUploaderClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UploaderClaims(ctx context.Context) (*config.UploaderClaims, bool) {
	claims, ok := ctx.Value(CtxUploaderClaims).(*config.UploaderClaims)
	return claims, ok
}
