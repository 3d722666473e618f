package project

import "testing"

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []string
		want     string
	}{
		{"no trailing slash", "https://example.com/blog", []string{"posts/a.html"}, "https://example.com/blog/posts/a.html"},
		{"trailing slash", "https://example.com/blog/", []string{"posts/a.html"}, "https://example.com/blog/posts/a.html"},
		{"leading slash on segment", "https://example.com/blog", []string{"/posts/a.html"}, "https://example.com/blog/posts/a.html"},
		{"multiple segments", "https://example.com", []string{"tags", "go"}, "https://example.com/tags/go"},
		{"empty segment skipped", "https://example.com", []string{"", "x"}, "https://example.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinURL(tt.base, tt.segments...); got != tt.want {
				t.Errorf("JoinURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	proj := NewDefault()
	proj.SourceDir = "/src"
	proj.DestDir = "/out"

	if err := proj.Validate(); err == nil {
		t.Error("expected validation error without site name and base URL")
	}

	proj.Site.Name = "My Site"
	proj.Site.BaseURL = "https://example.com"
	if err := proj.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTemplate_Defaults(t *testing.T) {
	proj := NewDefault()
	if got := proj.Template(TypePost); got != "post" {
		t.Errorf("Template(post) = %q", got)
	}
	if got := proj.Template("page"); got != "page" {
		t.Errorf("Template(page) = %q, want type name fallback", got)
	}
	proj.Site.Templates[TypePost] = "article"
	if got := proj.Template(TypePost); got != "article" {
		t.Errorf("Template(post) = %q, want configured override", got)
	}
}
