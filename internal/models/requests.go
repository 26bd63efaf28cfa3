package models

// Request payloads bound through Gin. Field names follow the public API.

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CheckResetTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type AdminChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
}

type CategoryStoreRequest struct {
	NameEn        string `json:"name_en" binding:"required,max=191"`
	NameAr        string `json:"name_ar" binding:"required,max=191"`
	DescriptionEn string `json:"description_en"`
	DescriptionAr string `json:"description_ar"`
	ParentID      *uint  `json:"parent_id"`
	CoverImage    string `json:"cover_image"`
	BannerImage   string `json:"banner_image"`
}

type CategoryUpdateRequest struct {
	NameEn        string  `json:"name_en" binding:"required,max=191"`
	NameAr        string  `json:"name_ar" binding:"required,max=191"`
	DescriptionEn string  `json:"description_en"`
	DescriptionAr string  `json:"description_ar"`
	ParentID      *uint   `json:"parent_id"`
	Status        *string `json:"status" binding:"omitempty,oneof=active inactive"`
	CoverImage    *string `json:"cover_image"`
	BannerImage   *string `json:"banner_image"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ContentStoreRequest struct {
	TitleEn       string `json:"title_en" binding:"required,max=191"`
	TitleAr       string `json:"title_ar" binding:"required,max=191"`
	DescriptionEn string `json:"description_en"`
	DescriptionAr string `json:"description_ar"`
	CoachName     string `json:"coach_name"`
	CategoryID    uint   `json:"category_id" binding:"required"`
	SubcategoryID *uint  `json:"subcategory_id"`
	CoverImage    string `json:"cover_image" binding:"required"`
	FileURL       string `json:"file_url" binding:"required"`
	FileType      string `json:"file_type" binding:"required,oneof=pdf video audio"`
	UploadMethod  string `json:"upload_method" binding:"required"`
	VideoLength   string `json:"video_length"`
	NumberOfPages int    `json:"number_of_pages"`
	IsFeatured    bool   `json:"is_featured"`
}

// ContentUpdateRequest uses pointers so absent fields keep their stored
// values.
type ContentUpdateRequest struct {
	TitleEn       *string `json:"title_en" binding:"omitempty,max=191"`
	TitleAr       *string `json:"title_ar" binding:"omitempty,max=191"`
	DescriptionEn *string `json:"description_en"`
	DescriptionAr *string `json:"description_ar"`
	CoachName     *string `json:"coach_name"`
	CategoryID    *uint   `json:"category_id"`
	SubcategoryID *uint   `json:"subcategory_id"`
	CoverImage    *string `json:"cover_image"`
	FileURL       *string `json:"file_url"`
	FileType      *string `json:"file_type" binding:"omitempty,oneof=pdf video audio"`
	UploadMethod  *string `json:"upload_method"`
	VideoLength   *string `json:"video_length"`
	NumberOfPages *int    `json:"number_of_pages"`
	IsFeatured    *bool   `json:"is_featured"`
}

type LandingStoreRequest struct {
	BannerImage string `json:"banner_image" binding:"required"`
}

type CustomerStoreRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,max=32"`
	Description string `json:"description" binding:"required"`
}

type CounterRequest struct {
	Slug string `json:"slug" binding:"required"`
}
