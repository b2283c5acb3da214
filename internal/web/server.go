// Package web is the HTTP transport and HTML rendering layer. It consumes
// only the engine's public entry points and read-only views; it never
// touches the store directly.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/magnate/server/internal/auth"
	"github.com/magnate/server/internal/config"
	"github.com/magnate/server/internal/sim"
	"github.com/magnate/server/internal/store"
	"go.uber.org/zap"
)

const sessionCookie = "magnate_session"

const maxNameLen = 64

// Server renders the simulation over plain HTML forms.
type Server struct {
	cfg      config.Config
	log      *zap.Logger
	engine   *sim.Engine
	sessions *auth.Sessions
	hasher   *auth.Hasher
	mux      *http.ServeMux
}

func NewServer(cfg config.Config, eng *sim.Engine, sessions *auth.Sessions, hasher *auth.Hasher, log *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		engine:   eng,
		sessions: sessions,
		hasher:   hasher,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /new_user", s.handleNewUser)
	s.mux.HandleFunc("GET /user", s.handleUser)
	s.mux.HandleFunc("GET /building", s.handleBuilding)
	s.mux.HandleFunc("GET /building_type", s.handleBuildingType)
	s.mux.HandleFunc("GET /activity", s.handleActivity)
	s.mux.HandleFunc("POST /build", s.handleBuild)
	s.mux.HandleFunc("POST /edit_building", s.handleEditBuilding)
	s.mux.HandleFunc("POST /set_transfer", s.handleSetTransfer)
	return s
}

// Handler returns the root handler for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// currentUser resolves the session cookie, or the zero handle.
func (s *Server) currentUser(r *http.Request) store.UserID {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return 0
	}
	user, ok := s.sessions.Lookup(c.Value)
	if !ok {
		return 0
	}
	return user
}

// queryIndex parses a form/query value as a table row index, returning
// ok=false for absent or malformed values.
func queryIndex(r *http.Request, key string) (int, bool) {
	raw := r.FormValue(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) message(w http.ResponseWriter, status int, title, body string) {
	w.WriteHeader(status)
	if err := messageTmpl.Execute(w, struct{ Title, Body string }{title, body}); err != nil {
		s.log.Error("render message", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		ServerName    string
		UserName      string
		BuildingTypes []sim.BuildingTypeRef
		Now           string
	}{
		ServerName:    s.cfg.Server.Name,
		BuildingTypes: s.engine.BuildingTypes(),
		Now:           time.Now().Format("2006-01-02 15:04"),
	}
	if user := s.currentUser(r); user.Valid() {
		data.UserName = s.engine.UserName(user)
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("render index", zap.Error(err))
	}
}

func (s *Server) handleNewUser(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	password := r.FormValue("password")
	if name == "" || len(name) > maxNameLen || password == "" {
		s.message(w, http.StatusBadRequest, "Error", "Name and password are required.")
		return
	}

	user := s.engine.CreateOrGetUser(name, s.hasher.Hash(password))
	if !user.Valid() {
		s.message(w, http.StatusUnauthorized, "Error", "Wrong password for existing user.")
		return
	}

	token := s.sessions.Begin(user)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/user", http.StatusSeeOther)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	view, ok := s.engine.User(user)
	if !ok {
		s.message(w, http.StatusUnauthorized, "Error", "Not logged in.")
		return
	}
	if err := userTmpl.Execute(w, view); err != nil {
		s.log.Error("render user", zap.Error(err))
	}
}

func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	idx, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid id")
		return
	}
	view, ok := s.engine.Building(store.BuildingFromIndex(idx))
	if !ok {
		s.message(w, http.StatusNotFound, "Error", "Invalid id")
		return
	}
	if err := buildingTmpl.Execute(w, view); err != nil {
		s.log.Error("render building", zap.Error(err))
	}
}

func (s *Server) handleBuildingType(w http.ResponseWriter, r *http.Request) {
	idx, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid id")
		return
	}
	view, ok := s.engine.BuildingTypeDetail(store.BuildingTypeFromIndex(idx))
	if !ok {
		s.message(w, http.StatusNotFound, "Error", "Invalid id")
		return
	}
	if err := buildingTypeTmpl.Execute(w, view); err != nil {
		s.log.Error("render building type", zap.Error(err))
	}
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	idx, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid id")
		return
	}
	view, ok := s.engine.Activity(store.ActivityFromIndex(idx))
	if !ok {
		s.message(w, http.StatusNotFound, "Error", "Invalid id")
		return
	}
	if err := activityTmpl.Execute(w, view); err != nil {
		s.log.Error("render activity", zap.Error(err))
	}
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if !user.Valid() {
		s.message(w, http.StatusUnauthorized, "Error", "Not logged in.")
		return
	}
	idx, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid id")
		return
	}
	if !s.engine.RequestNewBuilding(user, store.BuildingTypeFromIndex(idx)) {
		s.message(w, http.StatusOK, "Not accepted", "Construction request not accepted. Try again.")
		return
	}
	http.Redirect(w, r, "/user", http.StatusSeeOther)
}

func (s *Server) handleEditBuilding(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if !user.Valid() {
		s.message(w, http.StatusUnauthorized, "Error", "Not logged in.")
		return
	}
	idx, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid id")
		return
	}
	slot, ok := queryIndex(r, "id2")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid activity slot")
		return
	}
	building := store.BuildingFromIndex(idx)
	if !s.engine.RequestSettingsChange(user, building, slot) {
		s.message(w, http.StatusOK, "Not accepted", "Settings change not accepted. Try again.")
		return
	}
	http.Redirect(w, r, "/building?id="+strconv.Itoa(idx), http.StatusSeeOther)
}

func (s *Server) handleSetTransfer(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if !user.Valid() {
		s.message(w, http.StatusUnauthorized, "Error", "Not logged in.")
		return
	}
	src, ok := queryIndex(r, "id")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid source storage")
		return
	}
	dst, ok := queryIndex(r, "id2")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid target storage")
		return
	}
	commodity, ok := queryIndex(r, "id3")
	if !ok {
		s.message(w, http.StatusBadRequest, "Error", "Invalid commodity")
		return
	}
	volume, err := strconv.ParseInt(r.FormValue("volume"), 10, 64)
	if err != nil {
		s.message(w, http.StatusBadRequest, "Error", "Invalid volume")
		return
	}

	accepted := s.engine.RequestTransfer(user,
		store.StorageFromIndex(src),
		store.StorageFromIndex(dst),
		store.CommodityFromIndex(commodity),
		volume)
	if !accepted {
		s.message(w, http.StatusOK, "Not accepted", "Transfer request not accepted. Try again.")
		return
	}
	back := r.Referer()
	if back == "" {
		back = "/user"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
