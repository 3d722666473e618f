// Package post builds immutable content records from parsed headers.
package post

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/malkoG/Serum/internal/header"
	"github.com/malkoG/Serum/internal/project"
)

// Header keys recognised for posts.
const (
	KeyTitle = "title"
	KeyDate  = "date"
	KeyTags  = "tags"
)

// Schema declares the post header format.
var Schema = header.Schema{
	KeyTitle: header.String,
	KeyDate:  header.Datetime,
	KeyTags:  header.List,
}

// Required lists the keys a post header must carry.
var Required = []string{KeyTitle}

// OutputExt is the markup extension of generated pages.
const OutputExt = ".html"

// Tag is a label attached to a post, with the URL of its listing page.
type Tag struct {
	Name    string
	ListURL string
}

// Post is one fully parsed and derived content item. It is created once by
// Build and never mutated afterwards.
type Post struct {
	SourcePath string
	Title      string
	Date       string    // RawDate rendered with the project date format
	RawDate    time.Time // structured timestamp for programmatic use
	Tags       []Tag     // source order preserved, duplicates permitted
	URL        string
	Body       string // raw markdown, unconverted
	OutputPath string
}

// Build derives a Post from a parsed header, the remaining body, and the
// project configuration. All validation happened in the header parser, so
// there is no failure path. An absent optional date falls back to the zero
// timestamp.
func Build(path string, h header.Header, body string, proj *project.Project) Post {
	date := h[KeyDate].Time() // zero time when absent
	rel := outputRel(proj.Rel(path))

	return Post{
		SourcePath: path,
		Title:      h[KeyTitle].Str(),
		Date:       date.Format(proj.Site.DateFormat),
		RawDate:    date,
		Tags:       BatchCreateTags(h[KeyTags].List(), proj),
		URL:        proj.URL(rel),
		Body:       body,
		OutputPath: filepath.Join(proj.DestDir, filepath.FromSlash(rel)),
	}
}

// BatchCreateTags turns raw tag strings into Tag values, preserving order.
func BatchCreateTags(names []string, proj *project.Project) []Tag {
	if len(names) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, Tag{
			Name:    name,
			ListURL: proj.URL(project.JoinURL("tags", name)),
		})
	}
	return tags
}

// outputRel swaps the source extension for OutputExt on a slash-separated
// relative path.
func outputRel(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputExt
}
