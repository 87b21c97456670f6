package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"avis-insight/internal/history"
	"avis-insight/internal/sentiment"
	"avis-insight/internal/stats"
)

const sessionCookie = "avis_session"

var filterOptions = []string{
	sentiment.FilterAll,
	string(sentiment.LabelPositive),
	string(sentiment.LabelNegative),
	string(sentiment.LabelNeutral),
}

type banner struct {
	Kind string // success | error | info | warning
	Text string
}

type clientPage struct {
	Banner  *banner
	UserID  string
	Comment string
}

type loginPage struct {
	Banner *banner
}

type reviewRow struct {
	Seq       int // one-based position in the unfiltered history
	AbsIndex  int
	UserID    string
	Comment   string
	Sentiment sentiment.Label
}

type dashboardPage struct {
	StatsView      bool
	Banner         *banner
	SkippedWarning string
	Filter         string
	Filters        []string
	Rows           []reviewRow
	Page           int
	Pages          []int
}

type statsPage struct {
	StatsView bool
	Snapshot  stats.Snapshot
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("❌ Failed to render %s page: %v", name, err)
	}
}

// sessionID returns the caller's session, creating one when the cookie is
// missing or expired.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && s.sessions.Exists(c.Value) {
		return c.Value
	}
	id := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
	return id
}

func (s *Server) isAuthenticated(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	return err == nil && s.sessions.IsAuthenticated(c.Value)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.sessionID(w, r)
	s.render(w, "home", nil)
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	s.sessionID(w, r)
	if r.Method == http.MethodGet {
		s.render(w, "client", clientPage{})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	userID := r.PostFormValue("user_id")
	comment := r.PostFormValue("comment")

	// Emptiness only; entered whitespace is preserved verbatim.
	if userID == "" || comment == "" {
		s.render(w, "client", clientPage{
			Banner:  &banner{Kind: "warning", Text: "⚠️ Veuillez remplir tous les champs."},
			UserID:  userID,
			Comment: comment,
		})
		return
	}

	label, err := s.classifier.Classify(r.Context(), comment)
	if err != nil {
		s.render(w, "client", clientPage{
			Banner:  &banner{Kind: "error", Text: fmt.Sprintf("Une erreur s'est produite : %v", classificationCause(err))},
			UserID:  userID,
			Comment: comment,
		})
		return
	}

	if _, err := s.store.Append(history.Record{UserID: userID, Comment: comment, Sentiment: label}); err != nil {
		log.Printf("❌ Failed to persist review: %v", err)
		s.render(w, "client", clientPage{
			Banner:  &banner{Kind: "error", Text: fmt.Sprintf("Une erreur s'est produite : %v", err)},
			UserID:  userID,
			Comment: comment,
		})
		return
	}

	if s.notifier != nil && label == sentiment.LabelNegative {
		if err := s.notifier.Send(fmt.Sprintf("🚨 Avis négatif de %s : %s", userID, comment)); err != nil {
			log.Printf("⚠️ Failed to notify admin: %v", err)
		}
	}

	s.render(w, "client", clientPage{Banner: outcomeBanner(label)})
}

func classificationCause(err error) error {
	var ce *sentiment.ClassificationError
	if errors.As(err, &ce) {
		return ce.Cause
	}
	return err
}

func outcomeBanner(label sentiment.Label) *banner {
	switch label {
	case sentiment.LabelPositive:
		return &banner{Kind: "success", Text: "🌟 Avis positif : Merci pour votre retour positif ! 😊"}
	case sentiment.LabelNegative:
		return &banner{Kind: "error", Text: "🚨 Avis négatif : Nous sommes désolés pour votre expérience 😔"}
	default:
		return &banner{Kind: "info", Text: "🤔 Avis neutre : Merci pour votre avis !"}
	}
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := s.sessionID(w, r)
	if !s.sessions.IsAuthenticated(sid) {
		s.render(w, "login", loginPage{})
		return
	}

	if r.URL.Query().Get("vue") == "stats" {
		s.render(w, "stats", statsPage{
			StatsView: true,
			Snapshot:  stats.Project(s.store.All()),
		})
		return
	}

	var b *banner
	switch r.URL.Query().Get("msg") {
	case "supprime":
		b = &banner{Kind: "success", Text: "Avis supprimé avec succès !"}
	case "erreur":
		b = &banner{Kind: "error", Text: "Une erreur s'est produite lors de la suppression."}
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	s.render(w, "dashboard", s.buildDashboard(r.URL.Query().Get("filtre"), page, b))
}

func (s *Server) buildDashboard(filter string, page int, b *banner) dashboardPage {
	if !validFilter(filter) {
		filter = sentiment.FilterAll
	}
	view := s.store.Filter(filter)
	totalPages := history.TotalPages(len(view))
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	data := dashboardPage{
		Banner:  b,
		Filter:  filter,
		Filters: filterOptions,
		Page:    page,
	}
	if n := s.store.SkippedRows(); n > 0 {
		data.SkippedWarning = fmt.Sprintf("%d ligne(s) illisible(s) ignorée(s) dans l'historique.", n)
	}
	for _, e := range history.Paginate(view, page-1) {
		data.Rows = append(data.Rows, reviewRow{
			Seq:       e.Index + 1,
			AbsIndex:  e.Index,
			UserID:    e.Record.UserID,
			Comment:   e.Record.Comment,
			Sentiment: e.Record.Sentiment,
		})
	}
	for p := 1; p <= totalPages; p++ {
		data.Pages = append(data.Pages, p)
	}
	return data
}

func validFilter(filter string) bool {
	for _, f := range filterOptions {
		if filter == f {
			return true
		}
	}
	return false
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := s.sessionID(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if !s.authSvc.Check(r.PostFormValue("username"), r.PostFormValue("password")) {
		s.render(w, "login", loginPage{
			Banner: &banner{Kind: "error", Text: "Nom d'utilisateur ou mot de passe incorrect."},
		})
		return
	}
	s.sessions.Authenticate(sid)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.isAuthenticated(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	q := url.Values{}
	q.Set("filtre", r.PostFormValue("filtre"))
	q.Set("page", r.PostFormValue("page"))

	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		http.Redirect(w, r, "/admin?"+q.Encode(), http.StatusSeeOther)
		return
	}
	switch err := s.store.DeleteAt(index); {
	case err == nil:
		q.Set("msg", "supprime")
	case errors.Is(err, history.ErrIndexOutOfRange):
		// Stale delete control; re-render without complaint.
	default:
		log.Printf("❌ Failed to delete review %d: %v", index, err)
		q.Set("msg", "erreur")
	}
	http.Redirect(w, r, "/admin?"+q.Encode(), http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.isAuthenticated(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	data, err := s.store.Export()
	if err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="historique_avis.csv"`)
	_, _ = w.Write(data)
}
