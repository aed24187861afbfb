package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIdempotencyHelpers_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("key must be absent")
	}
	if IsReplay(c) || IsRateBypass(c) || GetIdempotencyScope(c) != "" {
		t.Fatalf("flags must default to false")
	}
	c.Set(ctxKeyIdemKey, 123)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("non-string key must be ignored")
	}
	c.Set(ctxKeyIdemReplay, "yes")
	if IsReplay(c) {
		t.Fatalf("non-bool replay must be ignored")
	}
}

func TestUserID_Resolution(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := UserID(c); got != DemoUser {
		t.Fatalf("fallback = %q", got)
	}
	c.Request.Header.Set(HeaderUserID, "  seller-9 ")
	if got := UserID(c); got != "seller-9" {
		t.Fatalf("header = %q", got)
	}
	c.Set(ctxKeyUserID, "ctx-user")
	if got := UserID(c); got != "ctx-user" {
		t.Fatalf("context = %q", got)
	}
}

func TestIdempotencyValidator_NoHeaderSkipsLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, func(context.Context, string, string, string, time.Time) (bool, error) {
		called = true
		return true, nil
	}))
	r.POST("/cases", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Fatalf("key must be absent")
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cases", nil))
	if w.Code != http.StatusCreated || called {
		t.Fatalf("code=%d called=%v", w.Code, called)
	}
}

func TestIdempotencyValidator_RejectsBadKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{MaxLen: 8, Pattern: regexp.MustCompile(`^[a-z]+$`)}, nil))
	r.POST("/cases", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for _, key := range []string{"toolongkey", "UPPER", "has space"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cases", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%q: code = %d", key, w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "bad_idempotency_key" {
			t.Fatalf("%q: body = %v", key, body)
		}
	}
}

func TestIdempotencyValidator_ScopedReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixed := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	var gotUser, gotScope, gotKey string
	var gotNow time.Time

	r := gin.New()
	r.Use(Identity())
	r.Use(IdempotencyValidator(IdempotencyOptions{
		Scope: func(c *gin.Context) string {
			if strings.HasSuffix(c.FullPath(), "/messages") {
				return "conversation:" + c.Param("id")
			}
			return ""
		},
		Now: func() time.Time { return fixed },
	}, func(_ context.Context, userID, scope, key string, now time.Time) (bool, error) {
		gotUser, gotScope, gotKey, gotNow = userID, scope, key, now
		return key == "seen", nil
	}))
	r.POST("/conversations/:id/messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"replay": IsReplay(c), "bypass": IsRateBypass(c), "scope": GetIdempotencyScope(c)})
	})
	r.POST("/profile", func(c *gin.Context) {
		k, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{"key": k, "scope": GetIdempotencyScope(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/conversations/conv-3/messages", nil)
	req.Header.Set(HeaderIdempotencyKey, "seen")
	req.Header.Set(HeaderUserID, "maker-1")
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["replay"] != true || body["bypass"] != true || body["scope"] != "conversation:conv-3" {
		t.Fatalf("body = %v", body)
	}
	if gotUser != "maker-1" || gotScope != "conversation:conv-3" || gotKey != "seen" || !gotNow.Equal(fixed) {
		t.Fatalf("lookup args: %q %q %q %v", gotUser, gotScope, gotKey, gotNow)
	}

	// Unscoped routes keep the key but never look it up.
	gotKey = ""
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/profile", nil)
	req.Header.Set(HeaderIdempotencyKey, "k-1")
	r.ServeHTTP(w, req)
	body = nil
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["key"] != "k-1" || body["scope"] != "" || gotKey != "" {
		t.Fatalf("unscoped: body=%v lookupKey=%q", body, gotKey)
	}
}

func TestIdempotencyValidator_LookupErrorIsNotReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, func(context.Context, string, string, string, time.Time) (bool, error) {
		return true, errors.New("db down")
	}))
	r.POST("/cases", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"replay": IsReplay(c), "scope": GetIdempotencyScope(c)})
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cases", nil)
	req.Header.Set(HeaderIdempotencyKey, "abc")
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["replay"] != false || body["scope"] != "/cases" {
		t.Fatalf("failed lookup must not replay; default scope is the route path: %v", body)
	}
}
