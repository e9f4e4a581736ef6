package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestStaticTokenSource(t *testing.T) {
	src := &StaticTokenSource{Value: "abc"}
	token, err := src.Token(context.Background())
	if err != nil || token != "abc" {
		t.Fatalf("expect abc, got %q err=%v", token, err)
	}

	empty := &StaticTokenSource{}
	if _, err := empty.Token(context.Background()); err == nil {
		t.Fatalf("expected error for empty static token")
	}
}

func TestPasswordTokenSourceCachesToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode auth body: %v", err)
		}
		if body["username"] != "svc" || body["password"] != "secret" {
			t.Errorf("unexpected credentials: %+v", body)
		}
		fmt.Fprint(w, `{"accessToken":"tok-1","expiresIn":3600}`)
	}))
	t.Cleanup(srv.Close)

	src, err := NewPasswordTokenSource(PasswordTokenConfig{
		Endpoint: srv.URL,
		Username: "svc",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}

	for i := 0; i < 3; i++ {
		token, err := src.Token(context.Background())
		if err != nil {
			t.Fatalf("token fetch %d: %v", i, err)
		}
		if token != "tok-1" {
			t.Fatalf("expect tok-1, got %q", token)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expect 1 auth call, got %d", calls.Load())
	}
}

func TestPasswordTokenSourceRejectsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	src, err := NewPasswordTokenSource(PasswordTokenConfig{
		Endpoint: srv.URL,
		Username: "svc",
		Password: "wrong",
	})
	if err != nil {
		t.Fatalf("new token source: %v", err)
	}
	if _, err := src.Token(context.Background()); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestNewPasswordTokenSourceValidation(t *testing.T) {
	if _, err := NewPasswordTokenSource(PasswordTokenConfig{Username: "svc"}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
	if _, err := NewPasswordTokenSource(PasswordTokenConfig{Endpoint: "http://auth"}); err == nil {
		t.Fatalf("expected error for empty username")
	}
}
