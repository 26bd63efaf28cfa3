package service

import (
	"errors"
	"testing"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
)

func seedEngagementContent(t *testing.T, repo *memoryContentRepository, slug, fileType string) *models.Content {
	t.Helper()
	content := &models.Content{Slug: slug, Status: models.StatusActive, FileType: fileType}
	err := repo.CreateWithTranslations(content, []models.ContentTranslation{
		{Lang: models.LangEnglish, Title: slug + "-en"},
		{Lang: models.LangArabic, Title: slug + "-ar"},
	})
	if err != nil {
		t.Fatalf("failed to seed content: %v", err)
	}
	return content
}

func TestEngagementService_RepeatedViewsShareOneCounterRow(t *testing.T) {
	contentRepo := newMemoryContentRepository()
	engagementRepo := newMemoryEngagementRepository()
	svc := NewEngagementService(contentRepo, engagementRepo)

	content := seedEngagementContent(t, contentRepo, "video1", models.FileTypeVideo)

	for i := 0; i < 5; i++ {
		if err := svc.AddVideoView(content.Slug, 42); err != nil {
			t.Fatalf("AddVideoView returned error: %v", err)
		}
	}

	if rows := len(engagementRepo.views); rows != 1 {
		t.Fatalf("expected a single counter row, got %d", rows)
	}
	totals, err := engagementRepo.VideoViewTotals([]uint{content.ID})
	if err != nil {
		t.Fatalf("VideoViewTotals returned error: %v", err)
	}
	if totals[content.ID] != 5 {
		t.Fatalf("expected total 5, got %d", totals[content.ID])
	}
}

func TestEngagementService_DistinctUsersGetDistinctRows(t *testing.T) {
	contentRepo := newMemoryContentRepository()
	engagementRepo := newMemoryEngagementRepository()
	svc := NewEngagementService(contentRepo, engagementRepo)

	content := seedEngagementContent(t, contentRepo, "video2", models.FileTypeVideo)

	_ = svc.AddVideoView(content.Slug, 1)
	_ = svc.AddVideoView(content.Slug, 2)

	if rows := len(engagementRepo.views); rows != 2 {
		t.Fatalf("expected two counter rows, got %d", rows)
	}
}

func TestEngagementService_VideoViewRejectsPdfContent(t *testing.T) {
	contentRepo := newMemoryContentRepository()
	svc := NewEngagementService(contentRepo, newMemoryEngagementRepository())

	content := seedEngagementContent(t, contentRepo, "doc1", models.FileTypePDF)

	err := svc.AddVideoView(content.Slug, 1)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindNotFound {
		t.Fatalf("expected not found for pdf content, got %v", err)
	}
}

func TestEngagementService_PdfDownloadRequiresPdfContent(t *testing.T) {
	contentRepo := newMemoryContentRepository()
	engagementRepo := newMemoryEngagementRepository()
	svc := NewEngagementService(contentRepo, engagementRepo)

	video := seedEngagementContent(t, contentRepo, "video3", models.FileTypeVideo)
	pdf := seedEngagementContent(t, contentRepo, "doc2", models.FileTypePDF)

	if err := svc.AddPdfDownload(video.Slug, 1); err == nil {
		t.Fatalf("expected error for non-pdf content")
	}
	if err := svc.AddPdfDownload(pdf.Slug, 1); err != nil {
		t.Fatalf("AddPdfDownload returned error: %v", err)
	}
}

func TestEngagementService_UnknownSlugIsNotFound(t *testing.T) {
	svc := NewEngagementService(newMemoryContentRepository(), newMemoryEngagementRepository())

	err := svc.AddVideoView("missing", 1)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
