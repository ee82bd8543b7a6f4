package sqlite

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"task-manager/internal/errors"
	"task-manager/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string
	Body string
}

type noteRecord struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

var noteCodec = Codec[note, noteRecord]{
	Encode: func(n note) noteRecord { return noteRecord{ID: n.ID, Body: n.Body} },
	Decode: func(r noteRecord) (note, error) {
		if r.ID == "" {
			return note{}, fmt.Errorf("note without id")
		}
		return note{ID: r.ID, Body: r.Body}, nil
	},
}

// failingRepo wraps a repository and fails selected calls.
type failingRepo struct {
	Repository
	getErr error
	putErr error
}

func (f *failingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Repository.Get(ctx, key)
}

func (f *failingRepo) Put(ctx context.Context, key, value string) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Repository.Put(ctx, key, value)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(prev) })
	return &buf
}

func TestCollectionRoundTrip(t *testing.T) {
	repo := setupTestDB(t, Options{})
	ctx := context.Background()
	notes := NewCollection(repo, "notes", noteCodec)

	assert.Equal(t, "notes", notes.Key())
	assert.Empty(t, notes.Load(ctx))

	want := []note{{ID: "1", Body: "first"}, {ID: "2", Body: "second"}}
	require.NoError(t, notes.Save(ctx, want))
	assert.Equal(t, want, notes.Load(ctx))

	require.NoError(t, notes.Save(ctx, nil))
	got := notes.Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectionMalformedData(t *testing.T) {
	repo := setupTestDB(t, Options{})
	ctx := context.Background()
	notes := NewCollection(repo, "notes", noteCodec)
	logs := captureLog(t)

	for _, raw := range []string{"{not json", `{"id":"1"}`, `[{"id":""}]`, "null", "   "} {
		require.NoError(t, repo.Put(ctx, "notes", raw))
		got := notes.Load(ctx)
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
	assert.Contains(t, logs.String(), "malformed persisted data under notes")
}

func TestCollectionSkipsBadRecords(t *testing.T) {
	repo := setupTestDB(t, Options{})
	ctx := context.Background()
	notes := NewCollection(repo, "notes", noteCodec)
	logs := captureLog(t)

	require.NoError(t, repo.Put(ctx, "notes", `[{"id":"1","body":"a"},{"id":"","body":"lost"},{"id":"3","body":"c"}]`))
	want := []note{{ID: "1", Body: "a"}, {ID: "3", Body: "c"}}
	assert.Equal(t, want, notes.Load(ctx))
	assert.Contains(t, logs.String(), "skipping record 1")

	require.NoError(t, notes.Save(ctx, append(notes.Load(ctx), note{ID: "4", Body: "d"})))
	assert.Len(t, notes.Load(ctx), 3, "surviving records are kept across the next save")
}

func TestCollectionReadFailure(t *testing.T) {
	repo := &failingRepo{Repository: setupTestDB(t, Options{}), getErr: stderrors.New("disk gone")}
	logs := captureLog(t)

	got := NewCollection(repo, "notes", noteCodec).Load(context.Background())
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "disk gone")
}

func TestCollectionSaveQuotaExceeded(t *testing.T) {
	repo := setupTestDB(t, Options{QuotaBytes: 128})
	ctx := context.Background()
	notes := NewCollection(repo, "notes", noteCodec)
	logs := captureLog(t)

	require.NoError(t, notes.Save(ctx, []note{{ID: "1", Body: "short"}}))

	err := notes.Save(ctx, []note{{ID: "1", Body: strings.Repeat("x", 200)}})
	require.Error(t, err)
	assert.True(t, errors.IsQuotaExceeded(err))
	assert.Contains(t, logs.String(), errors.QuotaRemediation)

	// The previous contents survive a rejected save.
	assert.Equal(t, []note{{ID: "1", Body: "short"}}, notes.Load(ctx))
}

func TestCollectionSaveOtherFailure(t *testing.T) {
	repo := &failingRepo{Repository: setupTestDB(t, Options{}), putErr: errors.NewDatabaseError("write", stderrors.New("locked"))}
	captureLog(t)

	err := NewCollection(repo, "notes", noteCodec).Save(context.Background(), []note{{ID: "1"}})
	require.Error(t, err)
	assert.False(t, errors.IsQuotaExceeded(err))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestThemeStore(t *testing.T) {
	repo := setupTestDB(t, Options{})
	ctx := context.Background()
	themes := NewThemeStore(repo)

	assert.Equal(t, "light", themes.Get(ctx))
	require.NoError(t, themes.Set(ctx, "dark"))
	assert.Equal(t, "dark", themes.Get(ctx))

	logs := captureLog(t)
	failing := NewThemeStore(&failingRepo{Repository: repo, getErr: stderrors.New("boom")})
	assert.Equal(t, "light", failing.Get(ctx))

	full := NewThemeStore(&failingRepo{Repository: repo, putErr: errors.NewQuotaExceededError(ThemeKey, 4, 4, nil)})
	assert.NoError(t, full.Set(ctx, "light"))
	assert.Contains(t, logs.String(), "could not save theme")

	broken := NewThemeStore(&failingRepo{Repository: repo, putErr: stderrors.New("io")})
	assert.Error(t, broken.Set(ctx, "light"))
}

func TestHandleWriteError(t *testing.T) {
	ctx := context.Background()
	err := HandleWriteError(ctx, "k", 3, stderrors.New("constraint"))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))

	expired, cancel := context.WithTimeout(ctx, 0)
	defer cancel()
	<-expired.Done()
	err = HandleWriteError(expired, "k", 3, stderrors.New("interrupted"))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))

	assert.False(t, IsStorageFull(stderrors.New("plain")))
}
