package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/controllers"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/routes"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/services"
	"github.com/gspavan07/StudentCodingDashboard/internal/middleware"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/auth"
)

type testEnv struct {
	router *gin.Engine
	repos  *repositories.Repositories
	jwt    *auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repositories.NewMemoryRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "dashboard-test",
	})

	studentService := services.NewStudentService(repos.Roster)
	importService := services.NewImportService(repos.Roster)
	rankingService := services.NewRankingService(repos.Roster)
	authService := services.NewAuthService(repos.Users, jwtService)
	metaService := services.NewMetaService(repos.Feedback, repos.Developers)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(authService),
		controllers.NewStudentController(studentService, importService),
		controllers.NewRankingController(rankingService),
		controllers.NewMetaController(metaService),
		middleware.NewAuthMiddleware(jwtService),
	)

	return &testEnv{router: router, repos: repos, jwt: jwtService}
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(&models.User{ID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedStudents(t *testing.T, n int) {
	t.Helper()
	records := make([]repositories.ImportRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, repositories.ImportRecord{
			RollNumber: fmt.Sprintf("R%03d", i),
			Name:       fmt.Sprintf("Student %d", i),
			Branch:     "CSE",
			Year:       "3",
			Metrics: models.ProfileMetrics{
				LeetCode: models.LeetCodeMetrics{Easy: i * 10},
			},
		})
	}
	_, err := e.repos.Roster.Reconcile(context.Background(), records)
	require.NoError(t, err)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAllStudents(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 3)

	w := env.do(t, http.MethodGet, "/api/v1/students/all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var students []struct {
		RollNumber string `json:"rollNumber"`
		Score      int    `json:"score"`
	}
	decodeData(t, w, &students)
	require.Len(t, students, 3)
	assert.Equal(t, "R001", students[0].RollNumber)
	assert.Equal(t, 10, students[0].Score)
}

func TestGetStudentByRollNumber(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 1)

	w := env.do(t, http.MethodGet, "/api/v1/students/R001", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	missing := env.do(t, http.MethodGet, "/api/v1/students/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestGetStudentsBySection(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 2)

	w := env.do(t, http.MethodGet, "/api/v1/students?branch=CSE&year=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var students []struct {
		RollNumber string `json:"rollNumber"`
	}
	decodeData(t, w, &students)
	assert.Len(t, students, 2)

	// Both query parameters are required.
	noYear := env.do(t, http.MethodGet, "/api/v1/students?branch=CSE", "", nil)
	assert.Equal(t, http.StatusBadRequest, noYear.Code)

	noBranch := env.do(t, http.MethodGet, "/api/v1/students?year=3", "", nil)
	assert.Equal(t, http.StatusBadRequest, noBranch.Code)
}

func TestGetRankings(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 5)

	w := env.do(t, http.MethodGet, "/api/v1/rankings?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ranked []struct {
		Rank       int    `json:"rank"`
		RollNumber string `json:"rollNumber"`
		Score      int    `json:"score"`
	}
	decodeData(t, w, &ranked)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "R005", ranked[0].RollNumber)
	assert.Equal(t, 50, ranked[0].Score)
}

func TestGetRankings_YearWithoutBranch(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 2)

	w := env.do(t, http.MethodGet, "/api/v1/rankings?year=3", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/students", "", gin.H{
		"rollNumber": "R1", "name": "Ravi", "branch": "CSE", "year": "3",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpointsRejectViewerRole(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.jwt.GenerateToken(&models.User{ID: 2, Username: "viewer", IsAdmin: false})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/v1/students", token, gin.H{
		"rollNumber": "R1", "name": "Ravi", "branch": "CSE", "year": "3",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateStudent(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/v1/students", token, gin.H{
		"rollNumber": "20a91a0501", "name": "Ravi", "branch": "CSE", "year": "3",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var student struct {
		RollNumber string `json:"rollNumber"`
	}
	decodeData(t, w, &student)
	assert.Equal(t, "20A91A0501", student.RollNumber)

	dup := env.do(t, http.MethodPost, "/api/v1/students", token, gin.H{
		"rollNumber": "20A91A0501", "name": "Other", "branch": "CSE", "year": "3",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)
}

func TestImportStudents(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/v1/students/import", token, gin.H{
		"rows": []gin.H{
			{"rollNumber": "R1", "name": "Ravi", "branch": "CSE", "year": "3",
				"leetcode": gin.H{"easy": 4, "medium": 2}},
			{"rollNumber": "", "name": "Malformed"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Processed int `json:"processed"`
		Skipped   int `json:"skipped"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Skipped)
}

func TestDeleteStudent(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 1)
	token := env.adminToken(t)

	w := env.do(t, http.MethodDelete, "/api/v1/students/R001", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	again := env.do(t, http.MethodDelete, "/api/v1/students/R001", token, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestDeleteSection(t *testing.T) {
	env := newTestEnv(t)
	env.seedStudents(t, 3)
	token := env.adminToken(t)

	w := env.do(t, http.MethodDelete, "/api/v1/students/branch/CSE/section/3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Deleted int `json:"deleted"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, 3, resp.Deleted)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("secret-pass")
	require.NoError(t, err)
	_, err = env.repos.Users.Create(context.Background(), &models.User{
		Username: "admin", Password: hash, IsAdmin: true,
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin", "password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	decodeData(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsAdmin)

	bad := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestFeedbackAndDevelopers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/feedback", "", gin.H{
		"name": "Jane", "email": "jane@example.com", "message": "Great dashboard",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	devs := env.do(t, http.MethodGet, "/api/v1/developers", "", nil)
	assert.Equal(t, http.StatusOK, devs.Code)
}
