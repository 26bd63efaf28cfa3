package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"

	RoleAdmin = "admin"
	RoleUser  = "user"

	LangEnglish = "en"
	LangArabic  = "ar"

	FileTypePDF   = "pdf"
	FileTypeVideo = "video"
	FileTypeAudio = "audio"

	// FeaturedSlots is the maximum number of contents that may carry a
	// featured timestamp at the same time.
	FeaturedSlots = 4
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Gender    string `gorm:"type:varchar(16)" json:"gender"`
	Role      string `gorm:"type:varchar(32);default:'user'" json:"role"`
	Status    string `gorm:"type:varchar(16);default:'active'" json:"status"`

	FirstLoginAt *time.Time `json:"first_login_at,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// ForgotPasswordCodeSentAt bounds how long a reset code stays usable.
	ForgotPasswordCode       string     `gorm:"type:varchar(64)" json:"-"`
	ForgotPasswordCodeSentAt *time.Time `json:"-"`
	EmailVerifyCode          string     `gorm:"type:varchar(64)" json:"-"`

	Tokens []UserToken `gorm:"foreignKey:UserID" json:"-"`
}

// UserToken is a server-stored session row. The token string is a signed
// JWT for transport, but authority comes from the row existing here.
type UserToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"not null;index" json:"user_id"`
	Token  string `gorm:"type:text;uniqueIndex:idx_user_tokens_token,length:512;not null" json:"token"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Status      string `gorm:"type:varchar(16);default:'active'" json:"status"`
	CoverImage  string `json:"cover_image"`
	BannerImage string `json:"banner_image"`

	ParentID *uint     `gorm:"index" json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`

	Translations []CategoryTranslation `gorm:"foreignKey:CategoryID" json:"translations,omitempty"`
}

type CategoryTranslation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryID uint   `gorm:"not null;uniqueIndex:idx_category_translations_category_lang,priority:1" json:"category_id"`
	Lang       string `gorm:"type:varchar(8);not null;uniqueIndex:idx_category_translations_category_lang,priority:2;uniqueIndex:idx_category_translations_lang_name,priority:1" json:"lang"`
	Name       string `gorm:"not null;uniqueIndex:idx_category_translations_lang_name,priority:2" json:"name"`

	Description string `gorm:"type:text" json:"description"`
}

type Content struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Status       string `gorm:"type:varchar(16);default:'active'" json:"status"`
	CoverImage   string `json:"cover_image"`
	FileURL      string `gorm:"not null" json:"file_url"`
	FileType     string `gorm:"type:varchar(16);not null;index" json:"file_type"`
	UploadMethod string `gorm:"type:varchar(32)" json:"upload_method"`

	VideoLength   string `json:"video_length"`
	NumberOfPages int    `json:"number_of_pages"`

	// IsFeatured doubles as the featured flag and the ordering key:
	// non-null means featured, newer timestamps sort first.
	IsFeatured *time.Time `gorm:"index" json:"is_featured,omitempty"`

	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Category      Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubcategoryID *uint     `gorm:"index" json:"subcategory_id"`
	Subcategory   *Category `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`

	Translations []ContentTranslation `gorm:"foreignKey:ContentID" json:"translations,omitempty"`
}

type ContentTranslation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ContentID uint   `gorm:"not null;uniqueIndex:idx_content_translations_content_lang,priority:1" json:"content_id"`
	Lang      string `gorm:"type:varchar(8);not null;uniqueIndex:idx_content_translations_content_lang,priority:2" json:"lang"`

	// Title is unique across both languages, not per language.
	Title       string `gorm:"not null;uniqueIndex:idx_content_translations_title" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CoachName   string `json:"coach_name"`

	CategoryID    uint  `json:"category_id"`
	SubcategoryID *uint `json:"subcategory_id"`
}

// VideoView holds one mutable counter row per (content, user).
type VideoView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ContentID  uint  `gorm:"not null;uniqueIndex:idx_video_views_content_user,priority:1" json:"content_id"`
	UserID     uint  `gorm:"not null;uniqueIndex:idx_video_views_content_user,priority:2" json:"user_id"`
	ClickCount int64 `gorm:"not null;default:0" json:"click_count"`
}

type PdfDownload struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ContentID  uint  `gorm:"not null;uniqueIndex:idx_pdf_downloads_content_user,priority:1" json:"content_id"`
	UserID     uint  `gorm:"not null;uniqueIndex:idx_pdf_downloads_content_user,priority:2" json:"user_id"`
	ClickCount int64 `gorm:"not null;default:0" json:"click_count"`
}

type LandingPage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BannerImage string `gorm:"not null" json:"banner_image"`
}

type CustomerDetail struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email       string `gorm:"not null" json:"email"`
	Phone       string `json:"phone"`
	Description string `gorm:"type:text" json:"description"`
}
