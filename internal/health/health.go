// Package health exposes a small monitoring HTTP surface over the
// workspace's index, background task queue, and file watcher: GET
// /healthz for a point-in-time snapshot, GET /healthz/stream for a
// websocket that pushes the same snapshot on an interval, for a
// dashboard. This is monitoring, not the LSP transport itself.
package health

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/aster-cloud/cnl/internal/index"
	"github.com/aster-cloud/cnl/internal/scheduler"
)

// Watcher is the subset of internal/watch's FileWatcher/PollWatcher this
// package depends on.
type Watcher interface {
	Running() bool
}

// Status is the JSON shape served by both /healthz and /healthz/stream.
type Status struct {
	IndexSize      int                `json:"indexSize"`
	Queue          scheduler.Snapshot `json:"queue"`
	WatcherRunning bool               `json:"watcherRunning"`
	Timestamp      int64              `json:"timestamp"`
}

// Server serves the health/monitoring HTTP surface.
type Server struct {
	idx     *index.Index
	queue   *scheduler.Queue
	watcher Watcher
	now     func() time.Time

	upgrader websocket.Upgrader

	mu          sync.Mutex
	streamConns map[*websocket.Conn]bool
	done        chan struct{}
	closeOnce   sync.Once
}

// NewServer builds a health server reporting on idx's size, queue's
// task metrics, and watcher's running state. The clock is time.Now;
// tests in this package can replace s.now.
func NewServer(idx *index.Index, queue *scheduler.Queue, watcher Watcher) *Server {
	return &Server{
		idx:     idx,
		queue:   queue,
		watcher: watcher,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		streamConns: make(map[*websocket.Conn]bool),
		done:        make(chan struct{}),
	}
}

// Routes builds the chi router exposing /healthz and /healthz/stream.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Get("/healthz/stream", s.handleHealthzStream)
	return r
}

func (s *Server) status() Status {
	watcherRunning := s.watcher != nil && s.watcher.Running()
	return Status{
		IndexSize:      s.idx.Size(),
		Queue:          s.queue.Metrics(),
		WatcherRunning: watcherRunning,
		Timestamp:      s.now().Unix(),
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status()); err != nil {
		log.Printf("[health] failed to encode status: %v", err)
	}
}

func (s *Server) handleHealthzStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[health] failed to upgrade connection: %v", err)
		return
	}

	s.mu.Lock()
	s.streamConns[conn] = true
	s.mu.Unlock()

	s.pushStatus(conn)
	go s.streamLoop(conn)
}

// streamLoop pushes a fresh status every tick until the connection drops
// or the server is closed.
func (s *Server) streamLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	defer s.dropConn(conn)

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.pushStatus(conn) {
				return
			}
		}
	}
}

func (s *Server) pushStatus(conn *websocket.Conn) bool {
	payload, err := json.Marshal(s.status())
	if err != nil {
		log.Printf("[health] failed to marshal status: %v", err)
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return false
	}
	return true
}

func (s *Server) dropConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.streamConns[conn]; ok {
		delete(s.streamConns, conn)
		conn.Close()
	}
}

// Close stops every open stream connection.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.streamConns {
		conn.Close()
		delete(s.streamConns, conn)
	}
}
