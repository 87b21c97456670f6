package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"avis-insight/internal/auth"
	"avis-insight/internal/history"
	"avis-insight/internal/notify"
	"avis-insight/internal/sentiment"
)

// Server serves the client submission form and the admin area.
type Server struct {
	store      *history.Store
	classifier sentiment.Classifier
	authSvc    *auth.Service
	sessions   *auth.SessionManager
	notifier   notify.Notifier
	port       int
	server     *http.Server
	tmpl       *template.Template
}

func New(store *history.Store, classifier sentiment.Classifier, authSvc *auth.Service, sessions *auth.SessionManager, notifier notify.Notifier, port int) *Server {
	return &Server{
		store:      store,
		classifier: classifier,
		authSvc:    authSvc,
		sessions:   sessions,
		notifier:   notifier,
		port:       port,
		tmpl:       template.Must(template.New("pages").Parse(pagesTemplate)),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/client", s.handleClient)
	mux.HandleFunc("/admin", s.handleAdmin)
	mux.HandleFunc("/admin/login", s.handleLogin)
	mux.HandleFunc("/admin/delete", s.handleDelete)
	mux.HandleFunc("/admin/export", s.handleExport)
	mux.HandleFunc("/admin/charts/pie", s.handlePieChart)
	mux.HandleFunc("/admin/charts/bar", s.handleBarChart)
	mux.HandleFunc("/", s.handleRoot)
	return mux
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Starting review server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
