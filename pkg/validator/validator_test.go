package validator

import (
	"mime/multipart"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func TestSlugTagRegisteredOnBindingEngine(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatalf("unexpected binding engine type")
	}

	if err := engine.Var("strength-training", "slug"); err != nil {
		t.Fatalf("expected valid slug, got %v", err)
	}
	for _, bad := range []string{"Strength-Training", "strength training", "-strength", "strength-"} {
		if err := engine.Var(bad, "slug"); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		kind     string
		wantErr  bool
	}{
		{"jpeg image", "cover.JPG", 1024, "image", false},
		{"pdf document", "guide.pdf", 1024, "document", false},
		{"mp4 video", "session.mp4", 1024, "video", false},
		{"oversized file", "cover.png", 10 << 20, "", true},
		{"executable", "setup.exe", 1024, "", true},
		{"missing extension", "README", 1024, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tc.filename, Size: tc.size}
			kind, err := ValidateUpload(header, 5<<20)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.filename)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, kind)
			}
		})
	}
}

func TestValidateUploadNilHeader(t *testing.T) {
	if _, err := ValidateUpload(nil, 1024); err == nil {
		t.Fatalf("expected error for nil header")
	}
}

func TestSanitizeStrictStripsMarkup(t *testing.T) {
	got := SanitizeStrict("  <b>Strength</b> Training <script>alert(1)</script> ")
	if got != "Strength Training" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
}
