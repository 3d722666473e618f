// Package testutil provides shared test helpers for scaffolding project
// directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/malkoG/Serum/internal/project"
	"github.com/malkoG/Serum/internal/storage"
)

// BaseURL is the site base URL used by test projects.
const BaseURL = "https://example.com/blog"

// PostTemplate is a minimal post template exercising the metadata binding
// surface.
const PostTemplate = `<h1>{{.page.Title}}</h1>
<p class="date">{{.page.Date}}</p>
{{.contents}}`

// TestProject creates a temporary project tree (serum.yml, posts/,
// templates/post.html) and returns its configuration plus a storage
// provider rooted at the source directory.
func TestProject(t *testing.T) (*project.Project, storage.Provider) {
	t.Helper()

	srcDir := t.TempDir()
	destDir := t.TempDir()

	proj := project.NewDefault()
	proj.Site.Name = "Test Site"
	proj.Site.BaseURL = BaseURL
	proj.SourceDir = srcDir
	proj.DestDir = destDir
	if err := proj.Validate(); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"posts", "templates"} {
		if err := os.MkdirAll(filepath.Join(srcDir, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	WriteFile(t, srcDir, filepath.Join("templates", "post.html"), PostTemplate)

	store, err := storage.NewFS(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	return proj, store
}

// WriteFile writes content under root at rel, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Post renders a well-formed post source with the given header lines.
func Post(headerLines, body string) string {
	return "---\n" + headerLines + "---\n" + body
}
