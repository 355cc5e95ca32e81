package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestClientGet_InjectsAPIKey(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"status":"OK","count":3}`)
	}))
	defer ts.Close()

	client := NewClient("secret-key", ts.URL, "", 5*time.Second)
	doc, err := client.Get(context.Background(), "/v1/test", map[string]string{
		"limit":  "5",
		"apikey": "caller-value",
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotPath != "/v1/test" {
		t.Errorf("Expected path /v1/test, got %s", gotPath)
	}
	if gotQuery.Get("apikey") != "secret-key" {
		t.Errorf("API key should overwrite caller value, got %s", gotQuery.Get("apikey"))
	}
	if gotQuery.Get("limit") != "5" {
		t.Errorf("Expected limit=5, got %s", gotQuery.Get("limit"))
	}
	if doc.Status() != "OK" {
		t.Errorf("Expected status OK, got %s", doc.Status())
	}
}

func TestClientGet_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"status":"ERROR","error":"Unknown API Key"}`)
	}))
	defer ts.Close()

	client := NewClient("bad-key", ts.URL, "", 5*time.Second)
	_, err := client.Get(context.Background(), "/v1/test", nil)
	if err == nil {
		t.Fatal("Expected error for non-200 status")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Body == "" {
		t.Error("StatusError should carry the response body")
	}
}

func TestClientGet_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewClient("key", ts.URL, "", 2*time.Second)
	_, err := client.Get(context.Background(), "/v1/test", nil)
	if err == nil {
		t.Fatal("Expected error for refused connection")
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Error("Transport failure should not be a StatusError")
	}
}

func TestClientGet_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer ts.Close()

	client := NewClient("key", ts.URL, "", 5*time.Second)
	_, err := client.Get(context.Background(), "/v1/test", nil)
	if err == nil {
		t.Fatal("Expected error for invalid JSON body")
	}
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("key", "", "", 0)
	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
	if client.client.Timeout != defaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", defaultTimeout, client.client.Timeout)
	}
}
