// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NotThird/MidnightVault/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Puzzle not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "Not Found" || body.Message != "Puzzle not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"answer":"GRAPES"}`))

	var parsed models.SubmitAnswerRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("ParseJSONBody() error = %v", err)
	}
	if parsed.Answer != "GRAPES" {
		t.Errorf("parsed answer = %s, want GRAPES", parsed.Answer)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	// Normal request passes through with CORS headers
	req := httptest.NewRequest("GET", "/status", nil)
	req.Header.Set("Origin", "http://party.local")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, handler should have run", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://party.local" {
		t.Errorf("allow-origin = %s, want the request origin", got)
	}
	if allowed := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(allowed, "X-Player-Token") {
		t.Errorf("allow-headers = %s, want X-Player-Token included", allowed)
	}

	// Preflight short-circuits
	req = httptest.NewRequest("OPTIONS", "/status", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", "192.168.1.10:54321", nil, "192.168.1.10"},
		{"x-forwarded-for single", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %s, want %s", got, tt.want)
			}
		})
	}
}
