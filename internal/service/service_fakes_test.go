package service

import (
	"strings"
	"sync"

	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
)

// In-memory repositories backing the service tests. They mirror the
// duplicate-check contracts of the real repositories so the services see
// the same sentinel errors.

type memoryCategoryRepository struct {
	nextID       uint
	categories   map[uint]*models.Category
	translations map[uint][]models.CategoryTranslation
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{
		nextID:       1,
		categories:   make(map[uint]*models.Category),
		translations: make(map[uint][]models.CategoryTranslation),
	}
}

func (r *memoryCategoryRepository) nameTaken(lang, name string, excludeID uint) bool {
	for id, trs := range r.translations {
		if id == excludeID {
			continue
		}
		for _, tr := range trs {
			if tr.Lang == lang && tr.Name == name {
				return true
			}
		}
	}
	return false
}

func (r *memoryCategoryRepository) slugTaken(slug string, excludeID uint) bool {
	for id, cat := range r.categories {
		if id != excludeID && cat.Slug == slug {
			return true
		}
	}
	return false
}

func (r *memoryCategoryRepository) checkDuplicates(category *models.Category, translations []models.CategoryTranslation) error {
	for _, tr := range translations {
		if r.nameTaken(tr.Lang, tr.Name, category.ID) {
			if tr.Lang == models.LangArabic {
				return repository.ErrDuplicateArabicName
			}
			return repository.ErrDuplicateEnglishName
		}
	}
	if r.slugTaken(category.Slug, category.ID) {
		return repository.ErrDuplicateSlug
	}
	return nil
}

func (r *memoryCategoryRepository) CreateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error {
	if err := r.checkDuplicates(category, translations); err != nil {
		return err
	}
	category.ID = r.nextID
	r.nextID++
	stored := *category
	r.categories[category.ID] = &stored
	for i := range translations {
		translations[i].CategoryID = category.ID
	}
	r.translations[category.ID] = append([]models.CategoryTranslation(nil), translations...)
	return nil
}

func (r *memoryCategoryRepository) UpdateWithTranslations(category *models.Category, translations []models.CategoryTranslation) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkDuplicates(category, translations); err != nil {
		return err
	}
	stored := *category
	r.categories[category.ID] = &stored
	r.translations[category.ID] = append([]models.CategoryTranslation(nil), translations...)
	return nil
}

func (r *memoryCategoryRepository) DeleteWithTranslations(slug string) error {
	for id, cat := range r.categories {
		if cat.Slug == slug {
			delete(r.categories, id)
			delete(r.translations, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryCategoryRepository) ChangeStatus(slug, status string) error {
	for _, cat := range r.categories {
		if cat.Slug == slug {
			cat.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	for _, cat := range r.categories {
		if cat.Slug == slug {
			copied := *cat
			copied.Translations = append([]models.CategoryTranslation(nil), r.translations[cat.ID]...)
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryCategoryRepository) GetByID(id uint) (*models.Category, error) {
	cat, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cat
	copied.Translations = append([]models.CategoryTranslation(nil), r.translations[id]...)
	return &copied, nil
}

func (r *memoryCategoryRepository) AdminList(filter repository.CategoryListFilter) ([]repository.CategoryListing, int64, error) {
	return nil, 0, nil
}

func (r *memoryCategoryRepository) PublicList(filter repository.CategoryListFilter) ([]repository.PublicCategoryListing, int64, error) {
	return nil, 0, nil
}

type memoryContentRepository struct {
	nextID   uint
	contents map[uint]*models.Content
}

func newMemoryContentRepository() *memoryContentRepository {
	return &memoryContentRepository{
		nextID:   1,
		contents: make(map[uint]*models.Content),
	}
}

func (r *memoryContentRepository) TitleExists(titles []string, excludeContentID uint) (string, error) {
	for _, content := range r.contents {
		if content.ID == excludeContentID {
			continue
		}
		for _, tr := range content.Translations {
			for _, title := range titles {
				if tr.Title == title {
					return title, nil
				}
			}
		}
	}
	return "", nil
}

func (r *memoryContentRepository) CreateWithTranslations(content *models.Content, translations []models.ContentTranslation) error {
	content.ID = r.nextID
	r.nextID++
	stored := *content
	for i := range translations {
		translations[i].ContentID = content.ID
	}
	stored.Translations = append([]models.ContentTranslation(nil), translations...)
	r.contents[content.ID] = &stored
	return nil
}

func (r *memoryContentRepository) UpdateWithTranslations(content *models.Content, translations []models.ContentTranslation) error {
	if _, ok := r.contents[content.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *content
	stored.Translations = append([]models.ContentTranslation(nil), translations...)
	r.contents[content.ID] = &stored
	return nil
}

func (r *memoryContentRepository) GetBySlug(slug string) (*models.Content, error) {
	for _, content := range r.contents {
		if content.Slug == slug {
			copied := *content
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryContentRepository) GetActiveByID(id uint) (*models.Content, error) {
	content, ok := r.contents[id]
	if !ok || content.Status != models.StatusActive {
		return nil, repository.ErrNotFound
	}
	copied := *content
	return &copied, nil
}

func (r *memoryContentRepository) GetActiveBySlug(slug string) (*models.Content, error) {
	content, err := r.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if content.Status != models.StatusActive {
		return nil, repository.ErrNotFound
	}
	return content, nil
}

func (r *memoryContentRepository) DeleteWithTranslations(slug string) error {
	for id, content := range r.contents {
		if content.Slug == slug {
			delete(r.contents, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryContentRepository) ChangeStatus(slug, status string) error {
	for _, content := range r.contents {
		if content.Slug == slug {
			content.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryContentRepository) AdminList(filter repository.ContentListFilter) ([]models.Content, int64, error) {
	var result []models.Content
	for _, content := range r.contents {
		result = append(result, *content)
	}
	return result, int64(len(result)), nil
}

func (r *memoryContentRepository) PublicList(filter repository.ContentListFilter) ([]models.Content, int64, error) {
	var result []models.Content
	for _, content := range r.contents {
		if content.Status != models.StatusActive {
			continue
		}
		if filter.SubcategoryID != nil {
			if content.SubcategoryID == nil || *content.SubcategoryID != *filter.SubcategoryID {
				continue
			}
		}
		result = append(result, *content)
	}
	return result, int64(len(result)), nil
}

type counterKey struct {
	contentID uint
	userID    uint
}

type memoryEngagementRepository struct {
	mu        sync.Mutex
	views     map[counterKey]int64
	downloads map[counterKey]int64
}

func newMemoryEngagementRepository() *memoryEngagementRepository {
	return &memoryEngagementRepository{
		views:     make(map[counterKey]int64),
		downloads: make(map[counterKey]int64),
	}
}

func (r *memoryEngagementRepository) IncrementVideoView(contentID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[counterKey{contentID, userID}]++
	return nil
}

func (r *memoryEngagementRepository) IncrementPdfDownload(contentID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloads[counterKey{contentID, userID}]++
	return nil
}

func sumCounters(counters map[counterKey]int64, contentIDs []uint) map[uint]int64 {
	totals := make(map[uint]int64)
	for _, id := range contentIDs {
		for key, count := range counters {
			if key.contentID == id {
				totals[id] += count
			}
		}
	}
	return totals
}

func (r *memoryEngagementRepository) VideoViewTotals(contentIDs []uint) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sumCounters(r.views, contentIDs), nil
}

func (r *memoryEngagementRepository) PdfDownloadTotals(contentIDs []uint) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sumCounters(r.downloads, contentIDs), nil
}

type memoryUserRepository struct {
	nextID uint
	users  map[uint]*models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		nextID: 1,
		users:  make(map[uint]*models.User),
	}
}

func (r *memoryUserRepository) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) GetByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) GetActiveByLogin(login string) (*models.User, error) {
	for _, user := range r.users {
		if user.Status != models.StatusActive {
			continue
		}
		if user.Email == strings.ToLower(login) || user.Username == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	var result []models.User
	for _, user := range r.users {
		if user.Role == models.RoleAdmin {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		result = append(result, *user)
	}
	return result, int64(len(result)), nil
}

func (r *memoryUserRepository) UpdateStatus(username, status string) error {
	for _, user := range r.users {
		if user.Username == username {
			user.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryUserRepository) UpdatePassword(username, hashed string) error {
	for _, user := range r.users {
		if user.Username == username {
			user.Password = hashed
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryTokenRepository struct {
	tokens map[string]uint
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: make(map[string]uint)}
}

func (r *memoryTokenRepository) Create(token *models.UserToken) error {
	r.tokens[token.Token] = token.UserID
	return nil
}

func (r *memoryTokenRepository) GetByToken(token string) (*models.UserToken, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.UserToken{UserID: userID, Token: token}, nil
}

func (r *memoryTokenRepository) DeleteByToken(token string) error {
	if _, ok := r.tokens[token]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memoryTokenRepository) Replace(old string, fresh *models.UserToken) error {
	if _, ok := r.tokens[old]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tokens, old)
	r.tokens[fresh.Token] = fresh.UserID
	return nil
}

func (r *memoryTokenRepository) DeleteForUser(userID uint) error {
	for token, id := range r.tokens {
		if id == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

type memoryCustomerRepository struct {
	details []models.CustomerDetail
}

func (r *memoryCustomerRepository) Create(detail *models.CustomerDetail) error {
	detail.ID = uint(len(r.details) + 1)
	r.details = append(r.details, *detail)
	return nil
}

func (r *memoryCustomerRepository) List(page, limit int) ([]models.CustomerDetail, int64, error) {
	return append([]models.CustomerDetail(nil), r.details...), int64(len(r.details)), nil
}

type recordingNotifier struct {
	registrations []string
	resets        []string
	resetCodes    []string
}

func (n *recordingNotifier) SendRegistrationEmail(to, name string) {
	n.registrations = append(n.registrations, to)
}

func (n *recordingNotifier) SendPasswordResetEmail(to, code string) {
	n.resets = append(n.resets, to)
	n.resetCodes = append(n.resetCodes, code)
}
