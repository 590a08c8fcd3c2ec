// Package web is the browser inlet: a small editor page, a JSON action endpoint and a
// websocket that mirrors the device state.
package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"points/firmware/action"
	"points/firmware/snapshot"
	"points/kernel"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1024

// ErrNotReady reports that the device has not published any state yet.
var ErrNotReady = errors.New("device not ready")

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Hub            HubConfig
	Clock          clockwork.Clock
}

// Server serves the web inlet for one device.
type Server struct {
	sys     *kernel.System
	inlet   action.Inlet
	hub     *Hub
	opts    Options
	handler http.Handler
}

// New wires the routes for sys.
func New(sys *kernel.System, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{
		sys:   sys,
		inlet: action.NewInlet(sys, kernel.EPWeb),
		opts:  opts,
	}
	if opts.Hub.CheckOrigin == nil {
		opts.Hub.CheckOrigin = s.originAllowed
	}
	s.hub = NewHub(sys.Shared(), s.submit, opts.Clock, opts.Hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/action", s.handleAction)
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodPost},
		AllowedOrigins: opts.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(mux)
	return s
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Run serves on opts.Addr until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("web inlet listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, editorPage)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st, seq, ok := snapshot.Read(s.sys.Shared())
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, errorJSON(ErrNotReady.Error()))
		return
	}
	writeJSON(w, http.StatusOK, encodeState(st, seq))
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON(err.Error()))
		return
	}
	if len(body) > maxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorJSON("body too large"))
		return
	}

	err = s.submit(body)
	status := statusOf(err)
	if err != nil {
		writeJSON(w, status, errorJSON(err.Error()))
	} else {
		writeJSON(w, status, []byte(`{"status":"queued"}`))
	}
	log.Debug().Err(err).Str("remote", r.RemoteAddr).Int("status", status).Msg("web action")
}

// submit decodes an action document and posts it against the published roster size.
func (s *Server) submit(body []byte) error {
	a, err := action.ParseJSON(body)
	if err != nil {
		return err
	}
	st, _, ok := snapshot.Read(s.sys.Shared())
	if !ok {
		return ErrNotReady
	}
	return s.inlet.Post(a, int(st.Count))
}

func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.opts.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusAccepted
	case errors.Is(err, action.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
