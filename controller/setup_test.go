package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"community-service/controller"
	"community-service/database"
	"community-service/router"
)

// memorySessions replaces the Redis SessionStore in tests.
type memorySessions struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{tokens: map[string]string{}}
}

func (s *memorySessions) SetRefreshToken(_ context.Context, userId string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userId] = token
	return nil
}

func (s *memorySessions) GetRefreshToken(_ context.Context, userId string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, found := s.tokens[userId]
	if !found {
		return "", errors.New("no session")
	}
	return token, nil
}

// testDialector adds the duplicate-key translation the sqlite driver lacks,
// so the handlers see gorm.ErrDuplicatedKey here as they do on Postgres.
type testDialector struct {
	gorm.Dialector
}

func (d testDialector) Translate(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// newTestApp builds the full route surface over an in-memory SQLite store.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	t.Setenv("JWT_ACCESS_KEY", "test-access-key")
	t.Setenv("JWT_REFRESH_KEY", "test-refresh-key")
	t.Setenv("JWT_ACCESS_EXPIRE", "15")
	t.Setenv("JWT_REFRESH_EXPIRE", "60")
	t.Setenv("ADMIN_EMAIL", "dean@campus.edu")

	db, err := gorm.Open(testDialector{sqlite.Open(":memory:")}, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or every pool conn gets its own empty :memory: db.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	enforcer, err := database.Casbin(db)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{StrictRouting: true})
	router.Rest(app, router.Deps{
		Auth:      &controller.Auth{DB: db, Sessions: newMemorySessions(), Enforcer: enforcer},
		Users:     &controller.Users{DB: db},
		Notes:     &controller.Notes{DB: db},
		Papers:    &controller.Papers{DB: db},
		Skills:    &controller.Skills{DB: db},
		Forum:     &controller.Forum{DB: db},
		Messenger: &controller.Messenger{DB: db},
		Enforcer:  enforcer,
	})

	return app, db
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type testUser struct {
	Id      uint
	Email   string
	Access  string
	Refresh string
}

type authData struct {
	User struct {
		Id   uint   `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func register(t *testing.T, app *fiber.App, email, name string) testUser {
	t.Helper()

	code, env := doRequest(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "secret123",
		"name":     name,
	})
	require.Equal(t, fiber.StatusCreated, code, "register %s: %s", email, env.Message)

	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return testUser{Id: data.User.Id, Email: email, Access: data.Access, Refresh: data.Refresh}
}
