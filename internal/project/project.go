// Package project holds the read-only build configuration loaded from
// serum.yml plus the source/destination roots chosen on the command line.
package project

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Content-type names recognised by the build.
const (
	TypePost = "post"
)

// Site holds the serum.yml contents.
type Site struct {
	Name        string            `yaml:"site_name"`
	Description string            `yaml:"site_description"`
	Author      string            `yaml:"author"`
	BaseURL     string            `yaml:"base_url"`
	DateFormat  string            `yaml:"date_format"`
	Templates   map[string]string `yaml:"templates"`
}

// Validate validates the site configuration.
func (s *Site) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.BaseURL, validation.Required, is.URL),
	)
}

// Project is the full configuration consumed by every pipeline stage.
// SourceDir and DestDir are absolute by the time the pipeline runs.
type Project struct {
	Site      Site
	SourceDir string
	DestDir   string
}

// Validate validates the project configuration.
func (p *Project) Validate() error {
	if err := p.Site.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(p,
		validation.Field(&p.SourceDir, validation.Required),
		validation.Field(&p.DestDir, validation.Required),
	)
}

// NewDefault returns a Project with sensible default values; serum.yml
// overrides them field by field.
func NewDefault() *Project {
	return &Project{
		Site: Site{
			DateFormat: "2006-01-02",
			Templates:  map[string]string{TypePost: "post"},
		},
	}
}

// Template returns the template name configured for a content type,
// defaulting to the type name itself.
func (p *Project) Template(contentType string) string {
	if name, ok := p.Site.Templates[contentType]; ok && name != "" {
		return name
	}
	return contentType
}

// URL joins rel onto the configured base URL with exactly one separator
// between segments, regardless of trailing/leading slashes in either.
func (p *Project) URL(rel string) string {
	return JoinURL(p.Site.BaseURL, rel)
}

// JoinURL joins URL segments with single "/" separators. Empty segments are
// skipped.
func JoinURL(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, seg := range segments {
		seg = strings.Trim(seg, "/")
		if seg == "" {
			continue
		}
		out += "/" + seg
	}
	return out
}

// Rel expresses path relative to the source root, with forward slashes so
// the result is usable in URLs on every platform.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.SourceDir, path)
	if err != nil {
		// Fall back to the bare file name rather than leaking an
		// absolute path into URLs.
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
