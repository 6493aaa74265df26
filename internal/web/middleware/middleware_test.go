package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrustedProxy(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		wantRemote string
		wantScheme string
		wantHost   string
	}{
		{
			name:       "trusted proxy with X-Real-IP and forwarded proto",
			remote:     "127.0.0.1:4000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9", "X-Forwarded-Proto": "https", "X-Forwarded-Host": "dash.example.org"},
			wantRemote: "203.0.113.9",
			wantScheme: "https",
			wantHost:   "dash.example.org",
		},
		{
			name:       "trusted proxy with X-Forwarded-For chain",
			remote:     "10.1.2.3:4000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7, 10.1.2.3"},
			wantRemote: "198.51.100.7",
			wantHost:   "example.com",
		},
		{
			name:       "untrusted client headers ignored",
			remote:     "192.0.2.10:5000",
			headers:    map[string]string{"X-Real-IP": "1.2.3.4", "X-Forwarded-Proto": "https", "X-Forwarded-Host": "evil.test"},
			wantRemote: "192.0.2.10:5000",
			wantHost:   "example.com",
		},
		{
			name:       "invalid values ignored",
			remote:     "127.0.0.1:4000",
			headers:    map[string]string{"X-Real-IP": "not-an-ip", "X-Forwarded-Proto": "gopher", "X-Forwarded-Host": "a/b"},
			wantRemote: "127.0.0.1:4000",
			wantHost:   "example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *http.Request
			h := TrustedProxy([]string{"127.0.0.1", "10.0.0.0/8", "bogus"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			require.Equal(t, tt.wantRemote, got.RemoteAddr)
			require.Equal(t, tt.wantScheme, got.URL.Scheme)
			require.Equal(t, tt.wantHost, got.Host)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "info", "json"))
	defer slog.SetDefault(prev)

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"down"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gdp?country=1", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "/api/v1/gdp", entry["path"])
	require.Equal(t, "country=1", entry["query"])
	require.EqualValues(t, 503, entry["status"])
	require.EqualValues(t, len(`{"error":"down"}`), entry["bytes"])
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/v1/countries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/api/v1/countries/{id}", "200"))

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/countries/"+id, nil))
	}

	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/api/v1/countries/{id}", "200"))
	require.Equal(t, 3.0, after-before)
}
