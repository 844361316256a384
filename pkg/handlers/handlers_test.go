package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arnavshah/lecturebot-api-go/pkg/auth"
	"github.com/arnavshah/lecturebot-api-go/pkg/catalog"
	"github.com/arnavshah/lecturebot-api-go/pkg/database"
	"github.com/arnavshah/lecturebot-api-go/pkg/metrics"
	"github.com/arnavshah/lecturebot-api-go/pkg/models"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

type testServer struct {
	router *gin.Engine
	h      *Handler
	key    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("", filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	s, err := scheduler.NewScheduler(catalog.Default())
	require.NoError(t, err)

	h := &Handler{
		DB:        db,
		Auth:      auth.New("jwt-secret", "master-secret"),
		Scheduler: s,
		Metrics:   metrics.New(),
		Log:       zerolog.Nop(),
		Tick:      time.Millisecond,
	}
	return &testServer{router: NewRouter(h), h: h, key: h.Auth.GenerateKey("student42")}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LectureBot")

	w = ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status      string `json:"status"`
		Occurrences int    `json:"occurrences"`
	}
	decode(t, w, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 54, health.Occurrences)

	w = ts.do(t, http.MethodGet, "/admin", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LectureBot Admin")
}

func TestAPIKeyMiddleware(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/catalog", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/catalog", "student42.forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/catalog", ts.key, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var cat models.Catalog
	decode(t, w, &cat)
	assert.Len(t, cat.Professors, 7)
	assert.Len(t, cat.Courses, 9)
}

func TestAPIKeyMiddleware_RateLimit(t *testing.T) {
	ts := newTestServer(t)
	_, err := database.FindOrCreateKey(ts.h.DB, ts.key, "student42", 1)
	require.NoError(t, err)

	w := ts.do(t, http.MethodGet, "/api/schedule?day=Monday", ts.key, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/schedule?day=Monday", ts.key, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetSchedule(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/schedule?day=monday&section=B", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Schedule []models.Occurrence `json:"schedule"`
	}
	decode(t, w, &body)
	require.Len(t, body.Schedule, 4)
	assert.Equal(t, "Software Engineering", body.Schedule[0].Title)
	assert.Equal(t, "CA-102", body.Schedule[2].Room)

	w = ts.do(t, http.MethodGet, "/api/schedule?section=C", ts.key, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNext(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/next?day=Monday&at=10:30&section=A", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Next    *models.NextLecture `json:"next"`
		Message string              `json:"message"`
	}
	decode(t, w, &body)
	require.NotNil(t, body.Next)
	assert.Equal(t, "Elective-II (Digital Image Processing)", body.Next.Occurrence.Title)
	assert.Equal(t, "11:00", body.Next.Start)
	assert.Equal(t, "in 30 min", body.Next.TimeLeft)

	w = ts.do(t, http.MethodGet, "/api/next?day=Monday&minutes=1000", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body.Next = nil
	decode(t, w, &body)
	assert.Nil(t, body.Next)
	assert.Equal(t, noMoreToday, body.Message)

	for _, q := range []string{"day=Someday&minutes=10", "day=Monday", "day=Monday&minutes=abc", "day=Monday&minutes=1440", "day=Monday&at=25:00"} {
		w = ts.do(t, http.MethodGet, "/api/next?"+q, ts.key, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestStreamNext(t *testing.T) {
	ts := newTestServer(t)
	ts.h.NewClock = func(base int) scheduler.Clock {
		m := base - 1
		return func() int { m++; return m }
	}

	w := ts.do(t, http.MethodGet, "/api/next/stream?day=Monday&at=09:58&section=A", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:next"))
	assert.Equal(t, 4, strings.Count(body, "event:status"))
	assert.Contains(t, body, "starting soon")
	assert.Contains(t, body, "starting now")
	assert.Contains(t, body, `"visible":false`)
	assert.Less(t, strings.Index(body, "starting now"), strings.Index(body, `"visible":false`))
}

func TestStreamNext_NothingLeft(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/next/stream?day=Sunday&at=09:00", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event:none")
	assert.NotContains(t, w.Body.String(), "event:status")
}

func TestResolve_Conversation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/resolve", ts.key, models.ResolveRequest{
		Criteria: models.QueryCriteria{CourseCode: "MCA-3003"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var first models.ResolveResponse
	decode(t, w, &first)
	assert.True(t, first.NeedsClarification)
	assert.Equal(t, scheduler.ClarifySection, first.ClarifyOn)
	assert.Len(t, first.Matches, 6)

	w = ts.do(t, http.MethodPost, "/api/resolve", ts.key, models.ResolveRequest{
		Criteria: models.QueryCriteria{Section: "A"},
		Previous: first.Criteria,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var second models.ResolveResponse
	decode(t, w, &second)
	assert.False(t, second.NeedsClarification)
	assert.Equal(t, models.QueryCriteria{CourseCode: "MCA-3003", Section: "A"}, second.Criteria)
	require.Len(t, second.Matches, 3)
	for _, m := range second.Matches {
		assert.Equal(t, "A", m.Section)
	}

	w = ts.do(t, http.MethodPost, "/api/resolve", ts.key, `{"criteria":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/resolve", ts.key, models.ResolveRequest{
		Criteria: models.QueryCriteria{Day: "Someday"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContext(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/context?day=Thursday&lang=hi", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ctx models.ConversationContext
	decode(t, w, &ctx)
	assert.Equal(t, "hi", ctx.Language)
	assert.Equal(t, "Thursday", ctx.CurrentDay)
	assert.Len(t, ctx.Schedule, 54)

	w = ts.do(t, http.MethodGet, "/api/context?day=Thursday&lang=de", ts.key, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateTimetable(t *testing.T) {
	ts := newTestServer(t)

	good := `
professors:
  - {initials: AS, name: Mr. Akhilesh Singh}
courses:
  - {code: MCA-3003, name: Software Engineering, type: Lecture}
rules:
  - {day_group: MWF, section: A, room: CA-213, time: "10:00 - 11:00", course: MCA-3003, professors: [AS, XY]}
  - {day_group: Custom, days: [Tuesday], section: B, room: CA-303, time: "01:00 - 02:00", course: Lunch}
`
	w := ts.do(t, http.MethodPost, "/api/validate", ts.key, good)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Valid bool `json:"valid"`
		Stats struct {
			Occurrences int `json:"occurrence_count"`
		} `json:"stats"`
		Warnings struct {
			UnknownCourses    []string `json:"unknown_courses"`
			UnknownProfessors []string `json:"unknown_professors"`
		} `json:"warnings"`
	}
	decode(t, w, &res)
	assert.True(t, res.Valid)
	assert.Equal(t, 4, res.Stats.Occurrences)
	assert.Equal(t, []string{"Lunch"}, res.Warnings.UnknownCourses)
	assert.Equal(t, []string{"XY"}, res.Warnings.UnknownProfessors)

	bad := strings.Replace(good, "day_group: MWF", "day_group: MTW", 1)
	w = ts.do(t, http.MethodPost, "/api/validate", ts.key, bad)
	require.Equal(t, http.StatusOK, w.Code)
	var invalid struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	decode(t, w, &invalid)
	assert.False(t, invalid.Valid)
	assert.Contains(t, invalid.Error, "unknown day group")
}

func TestGetMyUsage(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/schedule?day=Monday", ts.key, nil)
	ts.do(t, http.MethodPost, "/api/resolve", ts.key, models.ResolveRequest{
		Criteria: models.QueryCriteria{CourseCode: "MCA-3003"},
	})

	w := ts.do(t, http.MethodGet, "/api/usage", ts.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		KeyName string `json:"key_name"`
		Totals  struct {
			Requests       int `json:"requests"`
			Matches        int `json:"matches"`
			Clarifications int `json:"clarifications"`
		} `json:"totals"`
	}
	decode(t, w, &body)
	assert.Equal(t, "student42", body.KeyName)
	assert.Equal(t, 2, body.Totals.Requests)
	assert.Equal(t, 9+6, body.Totals.Matches)
	assert.Equal(t, 1, body.Totals.Clarifications)
}

func TestAdminFlow(t *testing.T) {
	ts := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, ts.h.DB.Create(&database.MasterUser{Username: "registrar", PasswordHash: string(hash)}).Error)

	w := ts.do(t, http.MethodPost, "/admin/login", "", gin.H{"username": "registrar", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/admin/login", "", gin.H{"username": "registrar", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"access_token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = ts.do(t, http.MethodGet, "/admin/keys", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/admin/keys", login.Token, gin.H{"name": "mca-app", "rate_limit": 50})
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		ID  uint   `json:"id"`
		Key string `json:"key"`
	}
	decode(t, w, &created)
	userID, err := ts.h.Auth.VerifyKey(created.Key)
	require.NoError(t, err)
	assert.Equal(t, "mca-app", userID)

	w = ts.do(t, http.MethodPost, "/admin/keys", login.Token, gin.H{"name": "bad.name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/schedule?day=Friday", created.Key, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/keys", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Keys []database.APIKey `json:"keys"`
	}
	decode(t, w, &list)
	require.Len(t, list.Keys, 1)
	assert.Equal(t, 50, list.Keys[0].RateLimit)
	assert.Empty(t, list.Keys[0].Key, "raw keys are never listed")

	path := "/admin/keys/" + jsonNumber(created.ID)
	w = ts.do(t, http.MethodPut, path, login.Token, gin.H{"rate_limit": 75})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/usage/"+jsonNumber(created.ID), login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usage struct {
		Usage []database.APIUsage `json:"usage"`
	}
	decode(t, w, &usage)
	require.Len(t, usage.Usage, 1)
	assert.Equal(t, 1, usage.Usage[0].RequestCount)

	w = ts.do(t, http.MethodDelete, path, login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodDelete, path, login.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
