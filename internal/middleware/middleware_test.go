package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vancomm/minesweeper-demo/internal/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), tag("a"), tag("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"a", "b", "handler"}
	if len(order) != len(want) {
		t.Fatalf("have %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("have %v, want %v", order, want)
		}
	}
}

func TestRequireToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	sign := func(k *rsa.PrivateKey, uploader string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, config.UploaderClaims{
			Uploader: uploader,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(k)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	var seen string
	protected := RequireToken(discard, config.NewJWTWithKey(&key.PublicKey))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := UploaderClaims(r.Context())
			if !ok {
				t.Fatal("claims missing from context")
			}
			seen = claims.Uploader
		}),
	)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(otherKey, "mallory"), http.StatusUnauthorized},
		{"no uploader", "Bearer " + sign(key, ""), http.StatusUnauthorized},
		{"valid", "Bearer " + sign(key, "alice"), http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/demos", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != test.want {
				t.Fatalf("have %d, want %d", rec.Code, test.want)
			}
		})
	}
	if seen != "alice" {
		t.Fatalf("have uploader %q, want alice", seen)
	}

	readOnly := RequireToken(discard, nil)(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	readOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/demos", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("have %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestLoggingRecordsStatus(t *testing.T) {
	h := Logging(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("have %d, want %d", rec.Code, http.StatusTeapot)
	}
}
