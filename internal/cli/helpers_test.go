package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/repository/sqlite"
)

var testNow = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app *App
	api api.BusinessAPI
	out *bytes.Buffer
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%02d", prefix, n)
	}
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	return setupTestAppWithStore(t, sqlite.Options{})
}

func setupTestAppWithStore(t *testing.T, opts sqlite.Options) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo, err := sqlite.NewWithOptions(ctx, ":memory:", opts)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	businessAPI, err := api.NewBusinessAPI(ctx, repo, cfg,
		api.WithClock(func() time.Time { return testNow }),
		api.WithIDGenerator(sequentialIDs("id-")),
		api.WithLocation(time.UTC),
	)
	require.NoError(t, err)

	original := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = original })

	out := &bytes.Buffer{}
	app := NewAppWithConfig(businessAPI, cfg)
	app.SetOutput(out)

	return &testEnv{app: app, api: businessAPI, out: out}
}

// run executes args and returns what they printed.
func (e *testEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	e.out.Reset()
	require.NoError(t, e.app.Run(context.Background(), args))
	return e.out.String()
}

// runErr executes args and returns the error they produced.
func (e *testEnv) runErr(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	err := e.app.Run(context.Background(), args)
	require.Error(t, err)
	return err
}
