package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/resumind/internal/database"
	"github.com/jask/resumind/internal/feedback"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath, ""))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestResumeRepoRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := NewResumeRepo(openTestDB(t))

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, repo.Upsert(ctx, Resume{ID: "r1", CompanyName: "Acme", JobTitle: "Engineer", ResumePath: "a.pdf"}))
	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Acme · Engineer", got.Title())
	require.Nil(t, got.Feedback)
	require.False(t, got.CreatedAt.IsZero())

	fb := feedback.Feedback{OverallScore: 77, Skills: feedback.Category{Score: 60, Tips: []feedback.Tip{{Type: feedback.TipImprove, Tip: "Add Go"}}}}
	require.NoError(t, repo.UpdateFeedback(ctx, "r1", fb))
	got, err = repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got.Feedback)
	require.Equal(t, 77, got.Feedback.OverallScore)
	require.Equal(t, "Add Go", got.Feedback.Skills.Tips[0].Tip)

	require.ErrorIs(t, repo.UpdateFeedback(ctx, "ghost", fb), sql.ErrNoRows)

	require.NoError(t, repo.Upsert(ctx, Resume{ID: "r2", JobTitle: "Designer"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "r1"))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Designer", list[0].Title())
}

func TestUpsertKeepsStoredPaths(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewResumeRepo(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, Resume{ID: "r1", CompanyName: "Acme", ResumePath: "resumes/r1.pdf", ImagePath: "previews/r1.png"}))
	require.NoError(t, repo.Upsert(ctx, Resume{ID: "r1", CompanyName: "Acme Corp"}))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", got.CompanyName)
	require.Equal(t, "resumes/r1.pdf", got.ResumePath)
	require.Equal(t, "previews/r1.png", got.ImagePath)

	require.NoError(t, repo.Upsert(ctx, Resume{ID: "r1", ResumePath: "resumes/r1-v2.pdf"}))
	got, err = repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "resumes/r1-v2.pdf", got.ResumePath)
	require.Equal(t, "previews/r1.png", got.ImagePath)
}

func TestResumeTitleFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Resume", Resume{}.Title())
	require.Equal(t, "Acme", Resume{CompanyName: "Acme"}.Title())
}

func TestSettingsRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSettingsRepo(openTestDB(t))

	_, ok, err := repo.Get(ctx, "resumind-theme")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "resumind-theme", "dark"))
	require.NoError(t, repo.Set(ctx, "resumind-theme", "light"))
	v, ok, err := repo.Get(ctx, "resumind-theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "light", v)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Setting{{Key: "resumind-theme", Value: "light"}}, all)
}
