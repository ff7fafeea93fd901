package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Portfolio{}, &models.Shoutout{}, &models.SubmissionLog{}))
	return db
}

func newPortfolio(t *testing.T, uuid, name string, deadline time.Time) models.Portfolio {
	t.Helper()
	portfolio := models.Portfolio{
		UUID:              uuid,
		Name:              name,
		EarliestValidDate: deadline.AddDate(0, 0, -14),
		Deadline:          deadline,
	}
	require.NoError(t, portfolio.SetSubmissionList(nil))
	return portfolio
}

func TestPortfolioSubmissionsRoundTrip(t *testing.T) {
	repo := NewPortfolioRepository(setupTestDB(t))
	ctx := context.Background()

	portfolio := newPortfolio(t, "p1", "Sprint 1", time.Date(2024, 2, 1, 23, 59, 59, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, &portfolio))

	submissions := []models.Submission{{
		MemberEmail: "dev@org.dev",
		OpenedPRs: []models.PullRequestEntry{{
			URL:    "https://github.com/acme/repo/pull/42",
			Status: models.StatusValid,
		}},
		ReviewedPRs: []models.PullRequestEntry{{
			URL:    "https://github.com/acme/repo/pull/43",
			Status: models.StatusInvalid,
			Reason: "no review by dev-gh found",
		}},
		Status:      models.StatusInvalid,
		IsLate:      true,
		SubmittedAt: time.Date(2024, 1, 20, 15, 4, 5, 0, time.UTC),
	}}
	require.NoError(t, portfolio.SetSubmissionList(submissions))
	require.NoError(t, repo.Save(ctx, &portfolio))

	reloaded, err := repo.GetByUUID(ctx, "p1")
	require.NoError(t, err)
	decoded, err := reloaded.SubmissionList()
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, submissions[0].OpenedPRs, decoded[0].OpenedPRs)
	require.Equal(t, submissions[0].ReviewedPRs, decoded[0].ReviewedPRs)
	require.Equal(t, models.StatusInvalid, decoded[0].Status)
	require.True(t, decoded[0].IsLate)
	require.True(t, submissions[0].SubmittedAt.Equal(decoded[0].SubmittedAt))
}

func TestPortfolioListOrdering(t *testing.T) {
	repo := NewPortfolioRepository(setupTestDB(t))
	ctx := context.Background()

	older := newPortfolio(t, "p-old", "Sprint 1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	newer := newPortfolio(t, "p-new", "Sprint 2", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, &older))
	require.NoError(t, repo.Create(ctx, &newer))

	portfolios, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, portfolios, 2)
	require.Equal(t, "p-new", portfolios[0].UUID, "expected most recent deadline first")
}

func TestPortfolioListInfoOmitsSubmissions(t *testing.T) {
	repo := NewPortfolioRepository(setupTestDB(t))
	ctx := context.Background()

	portfolio := newPortfolio(t, "p1", "Sprint 1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, portfolio.SetSubmissionList([]models.Submission{{MemberEmail: "dev@org.dev", Status: models.StatusPending}}))
	require.NoError(t, repo.Create(ctx, &portfolio))

	infos, err := repo.ListInfo(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Empty(t, infos[0].Submissions)
	require.Equal(t, "Sprint 1", infos[0].Name)

	info, err := repo.GetInfoByUUID(ctx, "p1")
	require.NoError(t, err)
	require.Empty(t, info.Submissions)
}

func TestPortfolioDeleteAndMissing(t *testing.T) {
	repo := NewPortfolioRepository(setupTestDB(t))
	ctx := context.Background()

	portfolio := newPortfolio(t, "p1", "Sprint 1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, &portfolio))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.GetByUUID(ctx, "p1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionLogAppendAndList(t *testing.T) {
	db := setupTestDB(t)
	logs := NewSubmissionLogRepository(db)
	ctx := context.Background()

	for _, email := range []string{"dev@org.dev", "pm@org.dev"} {
		log := models.SubmissionLog{
			PortfolioUUID: "p1",
			MemberEmail:   email,
			Body:          datatypes.JSON(`{"opened_prs":[]}`),
		}
		require.NoError(t, logs.Append(ctx, &log))
	}
	other := models.SubmissionLog{PortfolioUUID: "p2", MemberEmail: "dev@org.dev", Body: datatypes.JSON(`{}`)}
	require.NoError(t, logs.Append(ctx, &other))

	entries, err := logs.ListByPortfolio(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, "p1", entry.PortfolioUUID)
	}
}
