package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm2grid/internal/grid"
)

func TestHTTPNavigatorGenerateURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ref grid.PageReference
		if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
			t.Errorf("decode page reference: %v", err)
		}
		if ref.Type != grid.PageTypeRecord || ref.Attributes.RecordID != "003C1" {
			t.Errorf("unexpected reference: %+v", ref)
		}
		fmt.Fprint(w, `{"url":"https://crm.example.com/r/003C1/view"}`)
	}))
	t.Cleanup(srv.Close)

	n, err := NewHTTPNavigator(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new http navigator: %v", err)
	}
	url, err := n.GenerateURL(context.Background(), grid.RecordPageReference("003C1"))
	if err != nil {
		t.Fatalf("generate url: %v", err)
	}
	if url != "https://crm.example.com/r/003C1/view" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestHTTPNavigatorBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown page type", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	n, err := NewHTTPNavigator(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new http navigator: %v", err)
	}
	if _, err := n.GenerateURL(context.Background(), grid.RecordPageReference("x")); err == nil {
		t.Fatalf("expected error on 400")
	}
}

func TestHTTPNavigatorMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	n, err := NewHTTPNavigator(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new http navigator: %v", err)
	}
	if _, err := n.GenerateURL(context.Background(), grid.RecordPageReference("x")); err == nil {
		t.Fatalf("expected error when response lacks url")
	}
}

func TestNewHTTPNavigatorValidation(t *testing.T) {
	if _, err := NewHTTPNavigator("", time.Second); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}
