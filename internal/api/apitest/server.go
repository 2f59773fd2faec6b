// Package apitest provides an in-memory fake of the resume-analyzer backend for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// EmptyResumeMessage is what the backend answers when a resume has no extractable text.
const EmptyResumeMessage = "Resume text is empty. The file may not have been parsed correctly. Please re-upload your resume."

// AnalyzeFunc produces a score and the JSON-encoded result for a resume and job description.
type AnalyzeFunc func(resumeText, jobDescription string) (score float64, result string, err error)

// DefaultAnalyze returns a fixed, well-formed analysis.
func DefaultAnalyze(_, _ string) (float64, string, error) {
	return 82, `{"score":82,"strengths":["Go","REST APIs"],"missing_skills":["Kubernetes"],"suggestions":"Mention container orchestration experience."}`, nil
}

// Request records what the fake received.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
}

type user struct {
	password string
	profile  types.UserProfile
}

type resume struct {
	owner string
	text  string
	types.Resume
}

// Server is a fake backend. All exported fields must be set before the first request.
type Server struct {
	*httptest.Server

	Prefix  string
	Analyze AnalyzeFunc

	mu          sync.Mutex
	secret      []byte
	users       map[string]*user  // by email
	tokens      map[string]string // token -> email
	resumes     map[int64]*resume
	analyses    map[int64]*types.Analysis
	jobs        []types.Job
	jobsStatus  int
	nextID      int64
	requests    []Request
	forceStatus map[string]int // "METHOD path" -> status
}

// NewServer starts a fake backend with resource endpoints under prefix.
func NewServer(prefix string) *Server {
	s := &Server{
		Prefix:      strings.TrimRight(prefix, "/"),
		Analyze:     DefaultAnalyze,
		secret:      []byte("apitest-secret"),
		users:       make(map[string]*user),
		tokens:      make(map[string]string),
		resumes:     make(map[int64]*resume),
		analyses:    make(map[int64]*types.Analysis),
		forceStatus: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	p := s.Prefix
	mux.Handle("POST "+p+"/resume/upload", s.requireAuth(s.handleUpload))
	mux.Handle("GET "+p+"/resume/my-resumes", s.requireAuth(s.handleMyResumes))
	mux.Handle("DELETE "+p+"/resume/{id}", s.requireAuth(s.handleDeleteResume))
	mux.Handle("POST "+p+"/analyze/{id}", s.requireAuth(s.handleAnalyze))
	mux.Handle("DELETE "+p+"/analyze/{id}", s.requireAuth(s.handleDeleteAnalysis))
	mux.Handle("GET "+p+"/analyze/history/{id}", s.requireAuth(s.handleHistory))
	mux.Handle("GET "+p+"/user/profile", s.requireAuth(s.handleGetProfile))
	mux.Handle("PUT "+p+"/user/profile", s.requireAuth(s.handlePutProfile))
	mux.Handle("GET "+p+"/jobs", s.requireAuth(s.handleJobs))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddUser registers an account directly.
func (s *Server) AddUser(name, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.users[strings.ToLower(email)] = &user{
		password: password,
		profile:  types.UserProfile{ID: s.nextID, Name: name, Email: email},
	}
}

// IssueToken returns a valid token for email, creating the user if needed.
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.users[key]; !ok {
		s.nextID++
		s.users[key] = &user{profile: types.UserProfile{ID: s.nextID, Name: email, Email: email}}
	}
	return s.issueTokenLocked(key)
}

func (s *Server) issueTokenLocked(email string) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		ID:        strconv.FormatInt(int64(len(s.tokens)+1), 10),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: failed to sign token: %v", err))
	}
	s.tokens[token] = email
	return token
}

// RevokeAll invalidates every issued token, simulating session expiry.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// SetJobs replaces the job feed.
func (s *Server) SetJobs(jobs []types.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
}

// FailJobs makes GET /jobs answer with status (0 restores normal behaviour).
func (s *Server) FailJobs(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobsStatus = status
}

// ForceStatus makes method+path (without prefix) answer with status.
func (s *Server) ForceStatus(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forceStatus[method+" "+s.Prefix+path] = status
}

// AddResume stores a resume for email and returns it.
func (s *Server) AddResume(email, fileName, text string) types.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := &resume{owner: strings.ToLower(email), text: text, Resume: types.Resume{ID: s.nextID, FileName: fileName}}
	s.resumes[r.ID] = r
	return r.Resume
}

// Resumes returns the stored resumes of email.
func (s *Server) Resumes(email string) []types.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumesOfLocked(strings.ToLower(email))
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Profile returns the stored profile of email.
func (s *Server) Profile(email string) (types.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return types.UserProfile{}, false
	}
	return u.profile, true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			ContentType:   r.Header.Get("Content-Type"),
		})
		status := s.forceStatus[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if status != 0 {
			s.errorResponse(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a known bearer token.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		email, ok := s.tokens[parts[1]]
		s.mu.Unlock()
		if !ok {
			// Spring Security answers unknown tokens with 403.
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, email)
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(req.Email)]
	if !ok || u.password != req.Password {
		s.errorResponse(w, http.StatusUnauthorized, "Bad credentials")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: s.issueTokenLocked(strings.ToLower(req.Email))})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(req.Email)
	if _, exists := s.users[key]; exists {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "Email already exists")
		return
	}
	s.nextID++
	s.users[key] = &user{
		password: req.Password,
		profile:  types.UserProfile{ID: s.nextID, Name: req.Name, Email: req.Email},
	}
	_, _ = io.WriteString(w, "User registered successfully")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, email string) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	s.mu.Lock()
	s.nextID++
	rec := &resume{owner: email, text: string(content), Resume: types.Resume{ID: s.nextID, FileName: header.Filename}}
	s.resumes[rec.ID] = rec
	if u, ok := s.users[email]; ok {
		u.profile.ResumeURL = fmt.Sprintf("%s/files/%d", s.URL, rec.ID)
	}
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, rec.Resume)
}

func (s *Server) resumesOfLocked(email string) []types.Resume {
	out := make([]types.Resume, 0)
	for id := int64(1); id <= s.nextID; id++ {
		if r, ok := s.resumes[id]; ok && r.owner == email {
			out = append(out, r.Resume)
		}
	}
	return out
}

func (s *Server) handleMyResumes(w http.ResponseWriter, _ *http.Request, email string) {
	s.mu.Lock()
	out := s.resumesOfLocked(email)
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, out)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request, email string) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.resumes[id]
	if !ok || rec.owner != email {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	delete(s.resumes, id)
	for aid, a := range s.analyses {
		if a.Resume != nil && a.Resume.ID == id {
			delete(s.analyses, aid)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, email string) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	rec, found := s.resumes[id]
	s.mu.Unlock()
	if !found || rec.owner != email {
		s.errorResponse(w, http.StatusInternalServerError, "Resume not found")
		return
	}
	if strings.TrimSpace(rec.text) == "" {
		s.errorResponse(w, http.StatusBadRequest, EmptyResumeMessage)
		return
	}

	score, result, err := s.Analyze(rec.text, req.JobDescription)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	encoded, _ := json.Marshal(result)

	s.mu.Lock()
	s.nextID++
	resumeCopy := rec.Resume
	a := &types.Analysis{
		ID:             s.nextID,
		Resume:         &resumeCopy,
		JobDescription: req.JobDescription,
		Score:          score,
		Result:         encoded,
		CreatedAt:      time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	s.analyses[a.ID] = a
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, a)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	out := make([]*types.Analysis, 0)
	for aid := int64(1); aid <= s.nextID; aid++ {
		if a, ok := s.analyses[aid]; ok && a.Resume != nil && a.Resume.ID == id {
			out = append(out, a)
		}
	}
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	delete(s.analyses, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request, email string) {
	s.mu.Lock()
	u, ok := s.users[email]
	var profile types.UserProfile
	if ok {
		profile = u.profile
	}
	s.mu.Unlock()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request, email string) {
	var req types.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	u.profile.Name = req.Name
	u.profile.Headline = req.Headline
	u.profile.CurrentJobTitle = req.CurrentJobTitle
	u.profile.About = req.About
	u.profile.Skills = req.Skills
	u.profile.Location = req.Location
	u.profile.Website = req.Website
	s.jsonResponse(w, http.StatusOK, u.profile)
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request, _ string) {
	s.mu.Lock()
	status := s.jobsStatus
	jobs := s.jobs
	s.mu.Unlock()
	if status != 0 {
		s.errorResponse(w, status, "job feed unavailable")
		return
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}
