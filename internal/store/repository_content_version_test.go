package store

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

const selectContentVersionSQL = `SELECT id, version, total_stories, last_updated, checksums FROM content_version WHERE id = $1`

func newTestVersionRepo(t *testing.T, db *sql.DB) ContentVersionRepository {
	t.Helper()
	return NewContentVersionRepository(newDBFromSQL(db), logger.Nop())
}

func TestContentVersionRepository_GetContentVersion(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestVersionRepo(t, db)

		lastUpdated := time.Now().Truncate(time.Millisecond)
		mock.ExpectQuery(regexp.QuoteMeta(selectContentVersionSQL)).
			WithArgs(models.ContentVersionID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "total_stories", "last_updated", "checksums"}).
				AddRow(models.ContentVersionID, 7, 2, lastUpdated.UnixMilli(), []byte(`{"forest":"aaa","ocean":"bbb"}`)))

		version, err := repo.GetContentVersion(testContext())
		require.NoError(t, err)

		assert.Equal(t, models.ContentVersionID, version.ID)
		assert.Equal(t, 7, version.Version)
		assert.Equal(t, 2, version.TotalStories)
		assert.Equal(t, lastUpdated.UnixMilli(), version.LastUpdated.UnixMilli())
		assert.Equal(t, map[string]string{"forest": "aaa", "ocean": "bbb"}, version.Checksums)
	})

	t.Run("missing row maps to ErrContentVersionNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestVersionRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(selectContentVersionSQL)).
			WithArgs(models.ContentVersionID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetContentVersion(testContext())
		require.ErrorIs(t, err, ErrContentVersionNotFound)
	})

	t.Run("corrupted checksum index", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestVersionRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(selectContentVersionSQL)).
			WithArgs(models.ContentVersionID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "total_stories", "last_updated", "checksums"}).
				AddRow(models.ContentVersionID, 7, 2, int64(0), []byte(`{broken`)))

		_, err := repo.GetContentVersion(testContext())
		require.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestContentVersionRepository_SaveContentVersion(t *testing.T) {
	version := models.ContentVersion{
		ID:           models.ContentVersionID,
		Version:      8,
		TotalStories: 3,
		LastUpdated:  time.Now(),
		Checksums:    map[string]string{"forest": "aaa"},
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestVersionRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO content_version`)).
			WithArgs(version.ID, version.Version, version.TotalStories, version.LastUpdated.UnixMilli(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := repo.SaveContentVersion(testContext(), version)
		require.NoError(t, err)
		assert.Equal(t, version.Version, saved.Version)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec failure is wrapped", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestVersionRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO content_version`)).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.SaveContentVersion(testContext(), version)
		require.ErrorIs(t, err, ErrExecutingQuery)
	})
}
