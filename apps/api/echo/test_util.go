package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/course"
	"github.com/lefika/ripota/core/monitoring"
	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
	emailsvc "github.com/lefika/ripota/services/email"
	inmemdb "github.com/lefika/ripota/storage/database/inmem"
)

type testEnv struct {
	conf   *core.Config
	server Server

	userRepo   user.Repository
	classRepo  class.Repository
	courseRepo course.Repository
	reportRepo report.Repository
	ratingRepo rating.Repository
}

func newTestConfig(t *testing.T) *core.Config {
	t.Helper()
	conf := &core.Config{
		Env:       "TEST",
		Debug:     false,
		TestMode:  true,
		AppName:   "Ripota",
		SecretKey: "s3cr3t-t3st-k3y",
	}
	conf.Server.JWTExpirationDelta = time.Hour
	conf.MonitoringCacheTTL = time.Minute
	return conf
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := newTestConfig(t)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	userRepo := inmemdb.NewUserRepository(db)
	classRepo := inmemdb.NewClassRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)
	reportRepo := inmemdb.NewReportRepository(db)
	ratingRepo := inmemdb.NewRatingRepository(db)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))

	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		UserSvc:        user.NewService(userRepo, mailSvc, conf),
		ClassSvc:       class.NewService(classRepo),
		CourseSvc:      course.NewService(courseRepo),
		ReportSvc:      report.NewService(reportRepo),
		RatingSvc:      rating.NewService(ratingRepo),
		MonitoringSvc:  monitoring.NewService(reportRepo, ratingRepo),
		Validate:       validate,
		Translator:     translator,
	})

	return &testEnv{
		conf:       conf,
		server:     srv,
		userRepo:   userRepo,
		classRepo:  classRepo,
		courseRepo: courseRepo,
		reportRepo: reportRepo,
		ratingRepo: ratingRepo,
	}
}

func (env *testEnv) createUser(t *testing.T, name, email, pwd, role string, isActive bool) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	usr := user.User{
		ID:        "usr-" + email,
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := env.userRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func (env *testEnv) tokenFor(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(env.conf, GetUserClaims(env.conf, usr))
	if err != nil {
		t.Fatalf("tokenFor() failed: %v", err)
	}
	return token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("request() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decodeBody() failed: %v: %s", err, rec.Body.String())
	}
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, wantMsg string) {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, wantMsg, body["error"])
}

