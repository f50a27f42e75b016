// ABOUTME: Optional HTTP monitoring surface for the receiver
// ABOUTME: Serves health, stats JSON, Prometheus metrics, and a websocket stats push
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pcmcast/pcmcast-go/internal/relay"
	"github.com/pcmcast/pcmcast-go/internal/version"
)

// Info identifies the receiver instance in monitor responses.
type Info struct {
	InstanceID string
	ListenAddr string
}

// Server is the optional HTTP monitoring server. It never touches the
// relay loop; all values come from counter snapshots.
type Server struct {
	server    *http.Server
	stats     func() relay.Stats
	metrics   *Metrics
	info      Info
	upgrader  websocket.Upgrader
	startTime time.Time
}

// NewServer creates a monitoring server on addr.
func NewServer(addr string, info Info, stats func() relay.Stats) *Server {
	s := &Server{
		stats:     stats,
		metrics:   NewMetrics(stats),
		info:      info,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins serving in the background.
func (s *Server) Start() error {
	log.Printf("Monitor server listening on %s", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Monitor server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// statsPayload is the JSON shape shared by /stats and /ws.
type statsPayload struct {
	Instance    string    `json:"instance"`
	ListenAddr  string    `json:"listen_addr"`
	Uptime      string    `json:"uptime"`
	Timestamp   time.Time `json:"timestamp"`
	Received    uint64    `json:"packets_received"`
	Played      uint64    `json:"packets_played"`
	Empty       uint64    `json:"packets_empty"`
	BytesPlayed uint64    `json:"bytes_played"`
}

func (s *Server) snapshot() statsPayload {
	st := s.stats()
	return statsPayload{
		Instance:    s.info.InstanceID,
		ListenAddr:  s.info.ListenAddr,
		Uptime:      time.Since(s.startTime).String(),
		Timestamp:   time.Now().UTC(),
		Received:    st.Received,
		Played:      st.Played,
		Empty:       st.Empty,
		BytesPlayed: st.BytesPlayed,
	}
}

// handleHealth implements the /health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startTime).String(),
		"service": map[string]interface{}{
			"name":     version.Product,
			"version":  version.Version,
			"instance": s.info.InstanceID,
		},
		"listen_addr": s.info.ListenAddr,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleStats implements the /stats endpoint.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.snapshot())
}

// handleWS upgrades to a websocket and pushes a stats snapshot every
// second until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Send an immediate snapshot so clients don't wait a full tick.
	if err := conn.WriteJSON(s.snapshot()); err != nil {
		return
	}

	for range ticker.C {
		if err := conn.WriteJSON(s.snapshot()); err != nil {
			return
		}
	}
}

// String describes the server for logs.
func (s *Server) String() string {
	return fmt.Sprintf("monitor(%s)", s.server.Addr)
}
