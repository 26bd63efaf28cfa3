package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coach-library-backend/internal/models"
)

// EngagementRepository maintains the per-(content, user) click counters
// and the summed totals the listings display.
type EngagementRepository interface {
	IncrementVideoView(contentID, userID uint) error
	IncrementPdfDownload(contentID, userID uint) error
	VideoViewTotals(contentIDs []uint) (map[uint]int64, error)
	PdfDownloadTotals(contentIDs []uint) (map[uint]int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func incrementAssignments(table string) clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"click_count": gorm.Expr(table + ".click_count + 1"),
			"updated_at":  time.Now(),
		}),
	}
}

func (r *engagementRepository) IncrementVideoView(contentID, userID uint) error {
	row := models.VideoView{ContentID: contentID, UserID: userID, ClickCount: 1}
	return r.db.Clauses(incrementAssignments("video_views")).Create(&row).Error
}

func (r *engagementRepository) IncrementPdfDownload(contentID, userID uint) error {
	row := models.PdfDownload{ContentID: contentID, UserID: userID, ClickCount: 1}
	return r.db.Clauses(incrementAssignments("pdf_downloads")).Create(&row).Error
}

type counterTotal struct {
	ContentID uint
	Total     int64
}

func (r *engagementRepository) sumByContent(model interface{}, contentIDs []uint) (map[uint]int64, error) {
	totals := make(map[uint]int64, len(contentIDs))
	if len(contentIDs) == 0 {
		return totals, nil
	}

	var rows []counterTotal
	err := r.db.Model(model).
		Select("content_id, SUM(click_count) AS total").
		Where("content_id IN ?", contentIDs).
		Group("content_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		totals[row.ContentID] = row.Total
	}
	return totals, nil
}

func (r *engagementRepository) VideoViewTotals(contentIDs []uint) (map[uint]int64, error) {
	return r.sumByContent(&models.VideoView{}, contentIDs)
}

func (r *engagementRepository) PdfDownloadTotals(contentIDs []uint) (map[uint]int64, error) {
	return r.sumByContent(&models.PdfDownload{}, contentIDs)
}
