package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobflix-backend/config"
	"jobflix-backend/internal/domain"
	"jobflix-backend/internal/repository"
	"jobflix-backend/internal/repository/memory"
	"jobflix-backend/internal/repository/seed"
	"jobflix-backend/internal/usecase"
	"jobflix-backend/pkg/audit"
	"jobflix-backend/pkg/cache"
	"jobflix-backend/pkg/filestore"
	"jobflix-backend/pkg/password"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
	RequestID string          `json:"request_id"`
}

func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		GinMode:                  gin.TestMode,
		FrontendURL:              "http://localhost:5173",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		FeaturedCompaniesLimit:   6,
		UploadDir:                t.TempDir(),
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemory(memory.NewStore(memory.WithClock(tickingClock())))
	_, err := seed.Load(context.Background(), repos.Companies, repos.Jobs)
	require.NoError(t, err)

	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	auditLog := audit.Nop()
	catalogUC := usecase.NewCatalogUsecase(repos.Jobs, repos.Companies, cache.New(nil, 0, ""), cfg.FeaturedCompaniesLimit)

	return NewRouter(RouterDeps{
		JobUC:         usecase.NewJobUsecase(repos.Jobs, repos.Companies, catalogUC, auditLog),
		CompanyUC:     usecase.NewCompanyUsecase(repos.Companies, repos.Jobs, catalogUC, auditLog),
		CatalogUC:     catalogUC,
		ApplicationUC: usecase.NewApplicationUsecase(repos.Applications, repos.Jobs, repos.Users, auditLog),
		BookmarkUC:    usecase.NewBookmarkUsecase(repos.Bookmarks, repos.Jobs, auditLog),
		UserUC:        usecase.NewUserUsecase(repos.Users, hasher, filestore.NewLocalStore(cfg.UploadDir, "/uploads"), auditLog),
		HealthUC:      usecase.NewHealthUsecase(repos, repos.Driver),
		Audit:         auditLog,
		Config:        cfg,
	})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestListJobs(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	jobs := decode[[]domain.Job](t, env.Data)
	require.Len(t, jobs, 6)
	assert.Equal(t, "DevOps Engineer", jobs[0].Title)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].PostedAt.After(jobs[i-1].PostedAt))
	}
}

func TestListJobs_Filters(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	tests := []struct {
		query string
		want  int
	}{
		{"?salaryMin=60000", 4},
		{"?search=DEVELOPER", 2},
		{"?location=milano", 2},
		{"?category=Sviluppo%20Software&location=Torino", 1},
		{"?type=part-time", 0},
		{"?salaryMin=0&search=", 6},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodGet, "/api/jobs"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decode[[]domain.Job](t, env.Data), tt.want)
		})
	}
}

func TestListJobs_InvalidSalary(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodGet, "/api/jobs?salaryMin=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "salaryMin must be an integer", env.Message)
}

func TestGetJob_NotFound(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodGet, "/api/jobs/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Job not found", env.Message)
	assert.Equal(t, w.Header().Get("X-Request-ID"), env.RequestID)

	w, _ = doJSON(t, r, http.MethodGet, "/api/jobs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJob(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]interface{}{
		"title":       "Infermiere",
		"description": "Turni diurni in reparto",
		"company":     "Ospedale San Carlo",
		"location":    "Milano, IT",
		"type":        "part-time",
		"level":       "mid",
		"category":    "Sanità",
		"salaryMin":   28000,
		"salaryMax":   34000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[domain.Job](t, env.Data)
	assert.True(t, job.IsActive)
	assert.Equal(t, []string{}, job.Skills)

	_, env = doJSON(t, r, http.MethodGet, "/api/categories", nil)
	categories := decode[[]domain.JobCategory](t, env.Data)
	last := categories[len(categories)-1]
	assert.Equal(t, domain.JobCategory{Name: "Sanità", Count: 1, Icon: "fas fa-heartbeat"}, last)
}

func TestCreateJob_Validation(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodPost, "/api/jobs", map[string]interface{}{
		"title":       "Chef",
		"description": "Cucina",
		"company":     "Trattoria",
		"location":    "Napoli",
		"type":        "seasonal",
		"level":       "mid",
		"category":    "Altro",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode[[]string](t, env.Error)
	assert.Contains(t, details, "Type must be one of: full-time, part-time, contract, remote")

	w, env = doJSON(t, r, http.MethodPost, "/api/jobs", map[string]interface{}{
		"title":       "Chef",
		"description": "Cucina",
		"company":     "Trattoria",
		"location":    "Napoli",
		"type":        "full-time",
		"level":       "mid",
		"category":    "Altro",
		"salaryMin":   50000,
		"salaryMax":   30000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "salaryMin cannot be greater than salaryMax", env.Message)
}

func TestUpdateAndDeleteJob(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	_, env := doJSON(t, r, http.MethodGet, "/api/jobs/1", nil)
	before := decode[domain.Job](t, env.Data)

	w, env := doJSON(t, r, http.MethodPatch, "/api/jobs/1", map[string]interface{}{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)
	after := decode[domain.Job](t, env.Data)
	assert.False(t, after.IsActive)
	assert.Equal(t, before.PostedAt, after.PostedAt)
	assert.Equal(t, before.Title, after.Title)

	_, env = doJSON(t, r, http.MethodGet, "/api/jobs", nil)
	assert.Len(t, decode[[]domain.Job](t, env.Data), 5)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/jobs/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/api/jobs/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanies(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodGet, "/api/companies/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)
	featured := decode[[]domain.Company](t, env.Data)
	require.Len(t, featured, 4)
	assert.Equal(t, "TechInnovate", featured[0].Name)

	_, env = doJSON(t, r, http.MethodGet, "/api/companies/1/jobs", nil)
	for _, j := range decode[[]domain.Job](t, env.Data) {
		assert.Equal(t, int64(1), *j.CompanyID)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/companies/99/jobs", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/companies", map[string]interface{}{
		"name":        "Green Energy",
		"description": "Rinnovabili",
		"industry":    "Energy",
		"size":        "huge",
		"location":    "Bari",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[[]string](t, env.Error), "Size must be one of: startup, medium, large")
}

func registerUser(t *testing.T, r http.Handler, username string) domain.User {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
		"fullName": "Mario Rossi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "password")
	return decode[domain.User](t, env.Data)
}

func TestUsers(t *testing.T) {
	r := newTestRouter(t, testConfig(t))
	user := registerUser(t, r, "mrossi")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "mrossi",
		"email":    "other@example.com",
		"password": "correct-horse",
		"fullName": "Mario Rossi",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env := doJSON(t, r, http.MethodPatch, "/api/users/1", map[string]interface{}{"bio": "Frontend dev"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[domain.User](t, env.Data)
	assert.Equal(t, "Frontend dev", *updated.Bio)
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)
}

func TestApplicationsAndExport(t *testing.T) {
	r := newTestRouter(t, testConfig(t))
	user := registerUser(t, r, "giulia")

	w, env := doJSON(t, r, http.MethodPost, "/api/applications", map[string]interface{}{"userId": user.ID, "jobId": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	app := decode[domain.Application](t, env.Data)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)

	w, _ = doJSON(t, r, http.MethodPatch, "/api/applications/1", map[string]interface{}{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/applications", map[string]interface{}{"userId": user.ID, "jobId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = doJSON(t, r, http.MethodGet, "/api/users/1/applications", nil)
	assert.Len(t, decode[[]domain.Application](t, env.Data), 1)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/2/applications/export?format=csv", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applications_job_2_")
	assert.Contains(t, rec.Body.String(), "giulia@example.com")
}

func TestBookmarks(t *testing.T) {
	r := newTestRouter(t, testConfig(t))
	body := map[string]interface{}{"userId": 1, "jobId": 3}

	w, _ := doJSON(t, r, http.MethodDelete, "/api/bookmarks", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/bookmarks", body)
	require.Equal(t, http.StatusCreated, w.Code)

	_, env := doJSON(t, r, http.MethodGet, "/api/bookmarks/check?userId=1&jobId=3", nil)
	assert.JSONEq(t, `{"bookmarked":true}`, string(env.Data))

	w, _ = doJSON(t, r, http.MethodDelete, "/api/bookmarks", body)
	assert.Equal(t, http.StatusOK, w.Code)

	_, env = doJSON(t, r, http.MethodGet, "/api/bookmarks/check?userId=1&jobId=3", nil)
	assert.JSONEq(t, `{"bookmarked":false}`, string(env.Data))

	w, _ = doJSON(t, r, http.MethodGet, "/api/bookmarks/check?userId=x&jobId=3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCV(t *testing.T) {
	r := newTestRouter(t, testConfig(t))
	registerUser(t, r, "luca")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/cv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	user := decode[domain.User](t, env.Data)
	require.NotNil(t, user.CVURL)

	served := httptest.NewRecorder()
	r.ServeHTTP(served, httptest.NewRequest(http.MethodGet, *user.CVURL, nil))
	assert.Equal(t, http.StatusOK, served.Code)
	assert.True(t, strings.HasPrefix(served.Body.String(), "%PDF"))
}

func TestUploadCV_MissingFile(t *testing.T) {
	r := newTestRouter(t, testConfig(t))
	registerUser(t, r, "anna")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/1/cv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimitGlobalThreshold = 2
	r := newTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		w, _ := doJSON(t, r, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, env := doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, testConfig(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
