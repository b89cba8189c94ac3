package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "info", ShutdownTimeoutSeconds: 1},
		Tasks:  config.TasksConfig{DefaultCreatorID: 1},
		HTTP:   config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedDatabase(t *testing.T) {
	ctx := context.Background()
	db := testdb.OpenSQLite(t)
	log := quietLogger()

	require.NoError(t, seedDatabase(ctx, db, log))
	require.NoError(t, seedDatabase(ctx, db, log), "seeding twice must be harmless")

	app := newApplication(testConfig(), log, db)

	users, err := app.userService.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, seedUserEmail, users[0].Email)

	categories, err := app.categoryService.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(seedCategories))
	for i, c := range categories {
		assert.Equal(t, seedCategories[i], c.Name)
	}
}

func TestApplication_DefaultCreatorAfterSeed(t *testing.T) {
	ctx := context.Background()
	db := testdb.OpenSQLite(t)
	log := quietLogger()
	require.NoError(t, seedDatabase(ctx, db, log))

	app := newApplication(testConfig(), log, db)

	task, err := app.taskService.CreateTask(ctx, service.CreateTaskInput{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, seedUserName, *task.CreatedByName)

	srv := httptest.NewServer(app.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartHTTPServer_StopsOnCancel(t *testing.T) {
	app := &application{config: testConfig(), logger: quietLogger()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, http.NotFoundHandler()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
