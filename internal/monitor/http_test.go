// ABOUTME: Tests for the monitor HTTP surface
// ABOUTME: Exercises handlers with httptest and a fixed stats source
package monitor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pcmcast/pcmcast-go/internal/relay"
)

func fixedStats() relay.Stats {
	return relay.Stats{
		Received:    42,
		Played:      40,
		Empty:       2,
		BytesPlayed: 163840,
	}
}

func newTestServer() *Server {
	return NewServer("127.0.0.1:0", Info{
		InstanceID: "test-instance",
		ListenAddr: "0.0.0.0:46000",
	}, fixedStats)
}

func TestHandleStats(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	s.handleStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload statsPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}

	if payload.Received != 42 {
		t.Errorf("expected 42 received, got %d", payload.Received)
	}
	if payload.Played != 40 {
		t.Errorf("expected 40 played, got %d", payload.Played)
	}
	if payload.Empty != 2 {
		t.Errorf("expected 2 empty, got %d", payload.Empty)
	}
	if payload.BytesPlayed != 163840 {
		t.Errorf("expected 163840 bytes, got %d", payload.BytesPlayed)
	}
	if payload.Instance != "test-instance" {
		t.Errorf("expected instance test-instance, got %s", payload.Instance)
	}
}

func TestHandleStatsRejectsPost(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/stats", nil)
	rec := httptest.NewRecorder()

	s.handleStats(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var health map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}

	if health["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", health["status"])
	}
	if health["listen_addr"] != "0.0.0.0:46000" {
		t.Errorf("unexpected listen_addr %v", health["listen_addr"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()

	srv := httptest.NewServer(s.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	body := string(raw)

	for _, metric := range []string{
		"pcmcast_packets_received_total 42",
		"pcmcast_packets_played_total 40",
		"pcmcast_packets_empty_total 2",
		"pcmcast_bytes_played_total 163840",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("metrics output missing %q", metric)
		}
	}
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	// Two monitor servers in one process must not panic on duplicate
	// metric registration.
	a := NewMetrics(fixedStats)
	b := NewMetrics(fixedStats)

	if a.Registry() == b.Registry() {
		t.Error("each Metrics should own its registry")
	}
}
