package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/malkoG/Serum/internal/errs"
	"github.com/malkoG/Serum/internal/testutil"
)

func TestBuild_EndToEnd(t *testing.T) {
	proj, _ := testutil.TestProject(t)

	testutil.WriteFile(t, proj.SourceDir, "posts/hello.md",
		testutil.Post("title: Hello\ndate: 2020-01-02 03:04:05\ntags: go\n",
			"Intro with a [link](posts/other.html).\n"))
	testutil.WriteFile(t, proj.SourceDir, "posts/other.md",
		testutil.Post("title: Other\n", "Second post.\n"))

	if err := Build(context.Background(), WithProject(proj)); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(proj.DestDir, "posts", "hello.html"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1>Hello</h1>") {
		t.Errorf("title missing: %q", html)
	}
	if !strings.Contains(html, `class="date">2020-01-02<`) {
		t.Errorf("formatted date missing: %q", html)
	}
	if !strings.Contains(html, `href="`+testutil.BaseURL+`/posts/other.html"`) {
		t.Errorf("relative link not rewritten: %q", html)
	}

	if _, err := os.Stat(filepath.Join(proj.DestDir, "posts", "other.html")); err != nil {
		t.Errorf("second page not written: %v", err)
	}
}

func TestBuild_ReportsEveryBadFile(t *testing.T) {
	proj, _ := testutil.TestProject(t)

	testutil.WriteFile(t, proj.SourceDir, "posts/bad1.md", "no header at all\n")
	testutil.WriteFile(t, proj.SourceDir, "posts/bad2.md", testutil.Post("date: not-a-date\n", ""))
	testutil.WriteFile(t, proj.SourceDir, "posts/good.md", testutil.Post("title: ok\n", "body"))

	err := Build(context.Background(), WithProject(proj))
	var be *errs.BatchError
	if !errors.As(err, &be) {
		t.Fatalf("error is %T, want *errs.BatchError", err)
	}
	if len(be.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(be.Errors))
	}
	// Nothing is written when the batch fails.
	if _, statErr := os.Stat(filepath.Join(proj.DestDir, "posts", "good.html")); !os.IsNotExist(statErr) {
		t.Errorf("output written despite batch failure: %v", statErr)
	}
}

func TestBuild_RequiresProject(t *testing.T) {
	if err := Build(context.Background()); err == nil {
		t.Error("expected error without project")
	}
}
