package repository

import "errors"

// Sentinel errors returned by composite repository operations. Services
// translate these into user-facing messages.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateEnglishName = errors.New("english name already exists")
	ErrDuplicateArabicName  = errors.New("arabic name already exists")
	ErrDuplicateSlug        = errors.New("slug already exists")
	ErrDuplicateTitle       = errors.New("title already exists")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrTranslationCount     = errors.New("unexpected translation row count")
)
