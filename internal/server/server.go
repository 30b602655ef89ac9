package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Server exposes the registered routes over http.
type Server struct {
	name   string
	port   int
	debug  bool
	routes []Route
	mux    *http.ServeMux
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		routes: make([]Route, 0),
		mux:    http.NewServeMux(),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds a single route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	return s.Add(Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	for _, r := range route {
		s.mux.HandleFunc(r.pattern(), s.handle(r.Method, r.Path, r.Exec))
	}
	return s
}

// Handle mounts a plain http handler, e.g. the metrics endpoint.
func (s *Server) Handle(path string, handler http.Handler) *Server {
	s.mux.Handle(path, handler)
	return s
}

func (r Route) pattern() string {
	if r.Path != "" {
		return fmt.Sprintf("/%s/%s", r.Action, r.Path)
	}
	return fmt.Sprintf("/%s", r.Action)
}

func (s *Server) handle(method Method, name string, handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			log.Debug().
				Str("server", s.name).
				Str("route", name).
				Float64("duration", time.Since(start).Seconds()).
				Msg("completed request")
		}()
		if Method(r.Method) != method {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		b, code, err := handler(r)
		if err != nil {
			s.error(w, err, code)
		} else if code != http.StatusOK {
			s.code(w, b, code)
		} else {
			s.respond(w, b)
		}
	}
}

// Mux returns the http handler of the server.
func (s *Server) Mux() http.Handler {
	return s.mux
}

// Run starts the server
func (s *Server) Run() error {
	log.Info().Str("server", s.name).Int("port", s.port).Int("routes", len(s.routes)).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.mux); err != nil {
		return fmt.Errorf("could not start server '%s': %w", s.name, err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	if code < http.StatusBadRequest {
		code = http.StatusInternalServerError
	}
	log.Error().Err(err).Int("code", code).Msg("error for http request")
	s.code(w, []byte(err.Error()), code)
}

func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// ReadJson decodes the request body into v.
func ReadJson(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}
