// Package testsupport holds helpers shared by the module's tests: golden file
// handling, go-cmp diffs, and fixture builders for page contexts and uploads.
package testsupport

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-trendminer/pkg/page"
)

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// AnonymousContext returns the render context of a visitor who is not logged in.
func AnonymousContext(title string) page.RenderContext {
	return page.RenderContext{Title: title}
}

// UserContext returns a render context for username with the given commit tag.
func UserContext(title, username, commit string) page.RenderContext {
	return page.RenderContext{
		Title:     title,
		User:      &page.User{Username: username},
		CommitTag: commit,
	}
}

// ConformingItemXML is a document that satisfies the default upload schema.
const ConformingItemXML = `<item>
<identificativo>XY2013010101234</identificativo>
<data>2013-01-01</data>
<sigla>XY</sigla>
<classe>1</classe>
<dimensione>1234</dimensione>
<titolo></titolo>
<TESTATA></TESTATA>
<TITOLO></TITOLO>
<TESTO></TESTO>
<database>DOCTYPE=HTML</database>
</item>`

// MustZip builds an in-memory archive holding files in the given order.
func MustZip(t *testing.T, files ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		header := &zip.FileHeader{Name: f.Name, Method: zip.Deflate}
		if f.Store {
			header.Method = zip.Store
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("zip create %s: %v", f.Name, err)
		}
		if _, err := w.Write([]byte(f.Body)); err != nil {
			t.Fatalf("zip write %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// ZipEntry is a single member passed to MustZip.
type ZipEntry struct {
	Name string
	Body string
	// Store writes the member uncompressed so tests can corrupt its bytes.
	Store bool
}
