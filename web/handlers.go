package web

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quizdb/importer"
	"quizdb/output"
	"quizdb/quiz"
	"quizdb/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)
	query := r.URL.Query()
	s.renderPage(w, http.StatusOK, store, query.Get("q"), query.Get("rec"), "")
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.logger.Warn("load rejected", "error", err)
		s.renderPage(w, status, store, "", "", fmt.Sprintf("read upload: %v", err))
		return
	}

	src := importer.Source{Path: strings.TrimSpace(r.FormValue("path"))}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		src = importer.Source{Name: header.Filename, Data: file}
	}
	if src.Data == nil && src.Path != "" && !s.pathLoad {
		s.logger.Warn("path load rejected", "path", src.Path)
		s.renderPage(w, http.StatusForbidden, store, "", "", errPathLoadDisabled.Error())
		return
	}

	result, err := store.Load(src, s.importOptions)
	if err != nil {
		s.logger.Warn("load failed", "source", firstNonEmpty(src.Name, src.Path), "error", err)
		s.renderPage(w, http.StatusBadRequest, store, "", "", err.Error())
		return
	}

	s.logger.Info("quiz data loaded",
		"source", result.SourceName,
		"format", result.Format,
		"rows", result.RowsRead,
		"columns", len(result.Table.Headers),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.End(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)

	writer, err := output.WriterForFormat(chi.URLParam(r, "format"), s.resolver)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	snapshot, err := store.Current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	query := r.URL.Query().Get("q")
	filtered := s.resolver.Filter(snapshot.Table, quiz.ParseTerms(query))

	var body bytes.Buffer
	if err := writer.Write(&body, filtered); err != nil {
		s.logger.Error("export failed", "format", writer.Extension(), "error", err)
		http.Error(w, fmt.Sprintf("export %s: %v", writer.Extension(), err), http.StatusInternalServerError)
		return
	}

	name := output.FileName(writer, query, s.now())
	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(body.Bytes())
}

func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)
	snapshot, err := store.Current()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	query := r.URL.Query()
	offset, limit := parsePaging(query.Get("offset"), query.Get("limit"))
	respondJSON(w, http.StatusOK, buildRecordsResponse(s.resolver, snapshot, query.Get("q"), offset, limit))
}

func (s *Server) handleAPIColumns(w http.ResponseWriter, r *http.Request) {
	store := s.sessionStore(w, r)
	snapshot, err := store.Current()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, columnsResponse{
		Source:  snapshot.SourceName,
		Columns: append([]string{}, snapshot.Table.Headers...),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, store *session.Store, query, rec, message string) {
	var current *session.Snapshot
	if snapshot, err := store.Current(); err == nil {
		current = &snapshot
	}
	view := buildPageView(s.resolver, current, query, rec)
	view.Error = message
	view.PathLoad = s.pathLoad

	var body bytes.Buffer
	if err := s.page.Execute(&body, view); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, fmt.Sprintf("render page: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body.Bytes())
}

var errPathLoadDisabled = errors.New("loading from a server path is disabled; upload the file instead")

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
