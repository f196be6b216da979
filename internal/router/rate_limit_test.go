package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldNormalizesEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":" Ama.Mensah@Example.COM ","password":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "41.66.200.9:40212"

	key := KeyByIPAndJSONField("email")(c)
	if key != "ama.mensah@example.com|41.66.200.9" {
		t.Fatalf("key want ama.mensah@example.com|41.66.200.9 got %s", key)
	}

	// The login handler still has to bind the same body afterwards.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Ama.Mensah@Example.COM") {
		t.Fatalf("request body not restored, got %s", string(body))
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`not-json`))
	c.Request.RemoteAddr = "41.66.200.9:40212"

	if key := KeyByIPAndJSONField("email")(c); key != "41.66.200.9" {
		t.Fatalf("malformed body should key by IP only, got %s", key)
	}
}

func TestRateLimitMiddlewareDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	rule := RateLimitRule{Prefix: "checkout", WindowSeconds: 60, MaxRequests: 1, Message: "too many orders"}
	r.Use(RateLimitMiddleware(nil, rule, KeyByIP))
	r.POST("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"placed": true})
	})

	// With no redis client the limiter is a no-op, so a burst past
	// MaxRequests still reaches the handler.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status want 200 got %d", i, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"placed":true`) {
			t.Fatalf("request %d unexpected body %s", i, w.Body.String())
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(5), want: 5, ok: true},
		{name: "int", input: int(6), want: 6, ok: true},
		{name: "uint16", input: uint16(7), want: 7, ok: true},
		{name: "float64 truncates", input: float64(8.7), want: 8, ok: true},
		{name: "string rejected", input: "nope", want: 0, ok: false},
		{name: "nil rejected", input: nil, want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
