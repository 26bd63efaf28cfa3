package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"coach-library-backend/internal/models"
)

// newMockDB opens a GORM handle over a sqlmock connection so transaction
// behaviour can be asserted without a live Postgres.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestCategoryRepositoryCreateRollsBackWhenTranslationInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	insertErr := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "category_translations"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "category_translations"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories"`).WillReturnRows(countRows(0))
	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "category_translations"`).WillReturnError(insertErr)
	mock.ExpectRollback()

	category := &models.Category{Slug: "strength-training", Status: models.StatusActive}
	err := repo.CreateWithTranslations(category, []models.CategoryTranslation{
		{Lang: models.LangEnglish, Name: "Strength Training"},
		{Lang: models.LangArabic, Name: "تدريب القوة"},
	})
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected translation insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("category insert was not rolled back: %v", err)
	}
}

func TestCategoryRepositoryCreateStopsAtDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "category_translations"`).WillReturnRows(countRows(1))
	mock.ExpectRollback()

	category := &models.Category{Slug: "strength-training", Status: models.StatusActive}
	err := repo.CreateWithTranslations(category, []models.CategoryTranslation{
		{Lang: models.LangEnglish, Name: "Strength Training"},
		{Lang: models.LangArabic, Name: "تدريب القوة"},
	})
	if !errors.Is(err, ErrDuplicateEnglishName) {
		t.Fatalf("expected ErrDuplicateEnglishName, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no writes after the failed duplicate check: %v", err)
	}
}
