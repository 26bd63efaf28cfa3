package service

import (
	"errors"
	"testing"

	"coach-library-backend/internal/apperrors"
	"coach-library-backend/internal/models"
)

func storeCategory(t *testing.T, svc *CategoryService, nameEn, nameAr string, parentID *uint) *models.Category {
	t.Helper()
	category, err := svc.Store(models.CategoryStoreRequest{
		NameEn:   nameEn,
		NameAr:   nameAr,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	return category
}

func TestCategoryService_StoreDerivesSlugFromEnglishName(t *testing.T) {
	svc := NewCategoryService(newMemoryCategoryRepository(), nil)

	category := storeCategory(t, svc, "Strength Training", "تدريب القوة", nil)
	if category.Slug != "strength-training" {
		t.Fatalf("expected slug strength-training, got %q", category.Slug)
	}
	if len(category.Translations) != 2 {
		t.Fatalf("expected 2 translations, got %d", len(category.Translations))
	}
}

func TestCategoryService_StoreRejectsDuplicateEnglishName(t *testing.T) {
	svc := NewCategoryService(newMemoryCategoryRepository(), nil)
	storeCategory(t, svc, "Nutrition", "تغذية", nil)

	_, err := svc.Store(models.CategoryStoreRequest{NameEn: "Nutrition", NameAr: "أخرى"})
	if err == nil {
		t.Fatalf("expected duplicate name error")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if appErr.Message != "Category name (English) already exists" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestCategoryService_SubcategoryDuplicateUsesSubcategoryWording(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)

	parent := storeCategory(t, svc, "Fitness", "لياقة", nil)
	storeCategory(t, svc, "Cardio", "كارديو", &parent.ID)

	_, err := svc.Store(models.CategoryStoreRequest{
		NameEn:   "Other",
		NameAr:   "كارديو",
		ParentID: &parent.ID,
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Message != "Subcategory name (Arabic) already exists" {
		t.Fatalf("expected subcategory wording, got %v", err)
	}
}

func TestCategoryService_StoreRejectsMissingParent(t *testing.T) {
	svc := NewCategoryService(newMemoryCategoryRepository(), nil)

	missing := uint(99)
	_, err := svc.Store(models.CategoryStoreRequest{
		NameEn:   "Cardio",
		NameAr:   "كارديو",
		ParentID: &missing,
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindBadRequest {
		t.Fatalf("expected bad request for missing parent, got %v", err)
	}
}

func TestCategoryService_UpdateRegeneratesSlug(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)
	storeCategory(t, svc, "Yoga", "يوغا", nil)

	updated, err := svc.Update("yoga", models.CategoryUpdateRequest{
		NameEn: "Yoga & Pilates",
		NameAr: "يوغا وبيلاتس",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Slug != "yoga-pilates" {
		t.Fatalf("expected regenerated slug yoga-pilates, got %q", updated.Slug)
	}
}

func TestCategoryService_UpdateMovesUnderParentAndChangesStatus(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)
	parent := storeCategory(t, svc, "Fitness", "لياقة", nil)
	storeCategory(t, svc, "Cardio", "كارديو", nil)

	inactive := models.StatusInactive
	updated, err := svc.Update("cardio", models.CategoryUpdateRequest{
		NameEn:   "Cardio",
		NameAr:   "كارديو",
		ParentID: &parent.ID,
		Status:   &inactive,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != parent.ID {
		t.Fatalf("expected parent %d, got %v", parent.ID, updated.ParentID)
	}
	if updated.Status != models.StatusInactive {
		t.Fatalf("expected inactive status, got %q", updated.Status)
	}

	// Absent fields keep their previous values.
	kept, err := svc.Update("cardio", models.CategoryUpdateRequest{
		NameEn: "Cardio",
		NameAr: "كارديو",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if kept.ParentID == nil || *kept.ParentID != parent.ID {
		t.Fatalf("expected parent to be kept, got %v", kept.ParentID)
	}
	if kept.Status != models.StatusInactive {
		t.Fatalf("expected status to be kept, got %q", kept.Status)
	}
}

func TestCategoryService_UpdateRejectsUnknownParent(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)
	storeCategory(t, svc, "Cardio", "كارديو", nil)

	missing := uint(99)
	_, err := svc.Update("cardio", models.CategoryUpdateRequest{
		NameEn:   "Cardio",
		NameAr:   "كارديو",
		ParentID: &missing,
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCategoryService_UpdateUnknownSlugIsNotFound(t *testing.T) {
	svc := NewCategoryService(newMemoryCategoryRepository(), nil)

	_, err := svc.Update("missing", models.CategoryUpdateRequest{NameEn: "A", NameAr: "ب"})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategoryService_ChangeStatusValidatesValue(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)
	storeCategory(t, svc, "Boxing", "ملاكمة", nil)

	if err := svc.ChangeStatus("boxing", "archived"); err == nil {
		t.Fatalf("expected status validation error")
	}
	if err := svc.ChangeStatus("boxing", models.StatusInactive); err != nil {
		t.Fatalf("ChangeStatus returned error: %v", err)
	}

	category, err := repo.GetBySlug("boxing")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if category.Status != models.StatusInactive {
		t.Fatalf("expected inactive status, got %q", category.Status)
	}
}

func TestCategoryService_DestroyRemovesTranslations(t *testing.T) {
	repo := newMemoryCategoryRepository()
	svc := NewCategoryService(repo, nil)
	storeCategory(t, svc, "Running", "جري", nil)

	if err := svc.Destroy("running"); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := repo.GetBySlug("running"); err == nil {
		t.Fatalf("expected category to be gone")
	}

	// The freed names are reusable afterwards.
	storeCategory(t, svc, "Running", "جري", nil)
}
