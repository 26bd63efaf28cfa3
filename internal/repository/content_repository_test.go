package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"coach-library-backend/internal/models"
)

func featuredContent(id uint, featuredAt time.Time) models.Content {
	at := featuredAt
	return models.Content{ID: id, IsFeatured: &at}
}

func TestFeaturedEvictionsKeepsRoomForOneMore(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	featured := []models.Content{
		featuredContent(1, base),
		featuredContent(2, base.Add(time.Hour)),
		featuredContent(3, base.Add(2*time.Hour)),
		featuredContent(4, base.Add(3*time.Hour)),
	}

	ids := featuredEvictions(featured)
	if len(ids) != 1 {
		t.Fatalf("expected 1 eviction, got %d", len(ids))
	}
	if ids[0] != 1 {
		t.Fatalf("expected oldest row 1 evicted, got %d", ids[0])
	}
}

func TestFeaturedEvictionsNoOpBelowCap(t *testing.T) {
	base := time.Now()
	featured := []models.Content{
		featuredContent(1, base),
		featuredContent(2, base.Add(time.Hour)),
	}

	if ids := featuredEvictions(featured); len(ids) != 0 {
		t.Fatalf("expected no evictions below the cap, got %v", ids)
	}
}

func TestFeaturedEvictionsClearsBacklog(t *testing.T) {
	base := time.Now()
	featured := []models.Content{
		featuredContent(1, base),
		featuredContent(2, base.Add(time.Hour)),
		featuredContent(3, base.Add(2*time.Hour)),
		featuredContent(4, base.Add(3*time.Hour)),
		featuredContent(5, base.Add(4*time.Hour)),
		featuredContent(6, base.Add(5*time.Hour)),
	}

	ids := featuredEvictions(featured)
	if len(ids) != 3 {
		t.Fatalf("expected 3 evictions, got %d", len(ids))
	}
	for i, want := range []uint{1, 2, 3} {
		if ids[i] != want {
			t.Fatalf("expected eviction order [1 2 3], got %v", ids)
		}
	}
}

const duplicateTitleMessage = `ERROR: duplicate key value violates unique constraint "idx_content_translations_title" (SQLSTATE 23505)`

func TestContentRepositoryCreateTranslatesDuplicateTitleViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "content_translations"`).
		WillReturnError(errors.New(duplicateTitleMessage))
	mock.ExpectRollback()

	content := &models.Content{
		Slug:       "AbC123xY",
		Status:     models.StatusActive,
		FileType:   models.FileTypeVideo,
		FileURL:    "file.bin",
		CategoryID: 1,
	}
	err := repo.CreateWithTranslations(content, []models.ContentTranslation{
		{Lang: models.LangEnglish, Title: "Morning Routine", CategoryID: 1},
		{Lang: models.LangArabic, Title: "روتين الصباح", CategoryID: 1},
	})
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("content insert was not rolled back: %v", err)
	}
}

func TestContentRepositoryUpdateTranslatesDuplicateTitleViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contents"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "content_translations"`).
		WillReturnError(errors.New(duplicateTitleMessage))
	mock.ExpectRollback()

	content := &models.Content{
		ID:         3,
		Slug:       "AbC123xY",
		Status:     models.StatusActive,
		FileType:   models.FileTypeVideo,
		FileURL:    "file.bin",
		CategoryID: 1,
	}
	err := repo.UpdateWithTranslations(content, []models.ContentTranslation{
		{Lang: models.LangEnglish, Title: "Morning Routine", CategoryID: 1},
	})
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("content update was not rolled back: %v", err)
	}
}

func TestContentRepositoryDeleteRemovesTranslationRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(3, "AbC123xY"))
	mock.ExpectExec(`DELETE FROM "content_translations"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "contents" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteWithTranslations("AbC123xY"); err != nil {
		t.Fatalf("DeleteWithTranslations returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statement sequence: %v", err)
	}
}

func TestContentRepositoryDeleteUnknownSlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}))
	mock.ExpectRollback()

	if err := repo.DeleteWithTranslations("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
