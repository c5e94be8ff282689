package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rajeshwari-1K/AgriSense-AI/database"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/entity"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jar is a minimal cookie jar keyed by cookie name.
type jar map[string]*http.Cookie

func (j jar) update(resp *http.Response) {
	for _, c := range resp.Cookies() {
		j[c.Name] = c
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("AGRISENSE_SECRET", "0123456789abcdef0123456789abcdef")
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	s := NewServer()
	engine, err := s.initRouter()
	require.NoError(t, err)
	return engine
}

func doGet(engine *gin.Engine, path string, cookies jar) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	cookies.update(w.Result())
	return w
}

func doPost(engine *gin.Engine, path string, form url.Values, cookies jar) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	cookies.update(w.Result())
	return w
}

func signupAndLogin(t *testing.T, engine *gin.Engine, name, email, password string) jar {
	t.Helper()
	cookies := jar{}

	w := doPost(engine, "/signup", url.Values{
		"name":             {name},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	}, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth", w.Header().Get("Location"))

	w = doPost(engine, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/home", w.Header().Get("Location"))
	return cookies
}

func TestSignupLoginAndDashboard(t *testing.T) {
	engine := newTestRouter(t)
	cookies := signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	w := doGet(engine, "/home", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha")
}

func TestSignupValidation(t *testing.T) {
	engine := newTestRouter(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{
			name: "missing fields",
			form: url.Values{"name": {""}, "email": {"a@x.com"}, "password": {"secret1"}, "confirm_password": {"secret1"}},
		},
		{
			name: "password mismatch",
			form: url.Values{"name": {"Asha"}, "email": {"a@x.com"}, "password": {"secret1"}, "confirm_password": {"secret2"}},
		},
		{
			name: "bad email shape",
			form: url.Values{"name": {"Asha"}, "email": {"not-an-email"}, "password": {"secret1"}, "confirm_password": {"secret1"}},
		},
		{
			name: "short password",
			form: url.Values{"name": {"Asha"}, "email": {"a@x.com"}, "password": {"abc"}, "confirm_password": {"abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doPost(engine, "/signup", tt.form, jar{})
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/signup", w.Header().Get("Location"), "invalid signup returns to the form")
		})
	}

	userService := service.UserService{}
	count, err := userService.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "no account may exist after failed signups")
}

func TestLoginWrongPassword(t *testing.T) {
	engine := newTestRouter(t)
	signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	cookies := jar{}
	w := doPost(engine, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong66"},
	}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))

	w = doGet(engine, "/home", cookies)
	assert.Equal(t, http.StatusFound, w.Code, "failed login must not grant a session")
	assert.Equal(t, "/auth", w.Header().Get("Location"))
}

func TestAuthenticatedRoutesRedirectAnonymous(t *testing.T) {
	engine := newTestRouter(t)

	for _, path := range []string{"/home", "/predict", "/history", "/weather"} {
		w := doGet(engine, path, jar{})
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/auth", w.Header().Get("Location"), path)
	}
}

func TestPredictPersistsUnderOwner(t *testing.T) {
	engine := newTestRouter(t)
	cookies := signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	w := doPost(engine, "/predict", url.Values{
		"N":           {"10"},
		"P":           {"20"},
		"K":           {"30"},
		"temperature": {"25"},
		"humidity":    {"60"},
		"ph":          {"6.5"},
		"rainfall":    {"100"},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recommended crop:")

	userService := service.UserService{}
	user, err := userService.GetUserByEmail("a@x.com")
	require.NoError(t, err)

	predictionService := service.PredictionService{}
	predictions, err := predictionService.GetPredictions(user.Id, 0)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	p := predictions[0]
	assert.Equal(t, 10.0, p.Nitrogen)
	assert.Equal(t, 20.0, p.Phosphorus)
	assert.Equal(t, 30.0, p.Potassium)
	assert.Equal(t, 25.0, p.Temperature)
	assert.Equal(t, 60.0, p.Humidity)
	assert.Equal(t, 6.5, p.Ph)
	assert.Equal(t, 100.0, p.Rainfall)
	assert.NotEmpty(t, p.PredictedCrop)
	assert.GreaterOrEqual(t, p.Confidence, 0.0)
	assert.LessOrEqual(t, p.Confidence, 100.0)
}

func TestPredictDefaultsUnparseableFieldsToZero(t *testing.T) {
	engine := newTestRouter(t)
	cookies := signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	w := doPost(engine, "/predict", url.Values{
		"N":  {"oops"},
		"ph": {"6.5"},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	userService := service.UserService{}
	user, err := userService.GetUserByEmail("a@x.com")
	require.NoError(t, err)

	predictionService := service.PredictionService{}
	predictions, err := predictionService.GetPredictions(user.Id, 0)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, 0.0, predictions[0].Nitrogen)
	assert.Equal(t, 0.0, predictions[0].Rainfall)
	assert.Equal(t, 6.5, predictions[0].Ph)
}

func TestDeletePredictionContract(t *testing.T) {
	engine := newTestRouter(t)
	owner := signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	w := doPost(engine, "/predict", url.Values{"N": {"10"}}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	userService := service.UserService{}
	user, err := userService.GetUserByEmail("a@x.com")
	require.NoError(t, err)
	predictionService := service.PredictionService{}
	predictions, err := predictionService.GetPredictions(user.Id, 0)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	id := predictions[0].Id

	// Anonymous caller gets a 401 envelope and the record stays.
	w = doPost(engine, "/delete-prediction/"+id, nil, jar{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.False(t, msg.Success)
	assert.Equal(t, "Not logged in", msg.Error)

	// Another user's delete misses with a 404.
	other := signupAndLogin(t, engine, "Ravi", "r@x.com", "secret2")
	w = doPost(engine, "/delete-prediction/"+id, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	count, err := predictionService.CountPredictions(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "record must survive foreign delete attempts")

	// The owner's delete succeeds.
	w = doPost(engine, "/delete-prediction/"+id, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.True(t, msg.Success)

	count, err = predictionService.CountPredictions(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestHistoryAndLogout(t *testing.T) {
	engine := newTestRouter(t)
	cookies := signupAndLogin(t, engine, "Asha", "a@x.com", "secret1")

	doPost(engine, "/predict", url.Values{"N": {"10"}}, cookies)
	doPost(engine, "/predict", url.Values{"N": {"20"}}, cookies)

	w := doGet(engine, "/history", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prediction history")

	w = doGet(engine, "/logout", cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))

	w = doGet(engine, "/home", cookies)
	assert.Equal(t, http.StatusFound, w.Code, "logout must end the session")
}
