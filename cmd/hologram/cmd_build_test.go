package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), []byte("top level"))
	writeFile(t, filepath.Join(dir, "docs", "auth.md"), []byte("see docs/storage.md"))
	writeFile(t, filepath.Join(dir, "docs", "image.png"), []byte{0x89, 0x50})
	writeFile(t, filepath.Join(dir, ".git", "config.md"), []byte("not a document"))
	writeFile(t, filepath.Join(dir, ".hologram", "notes.md"), []byte("session dir"))

	docs, skipped, err := collectDocuments(dir, []string{".md"})
	if err != nil {
		t.Fatalf("collectDocuments: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	want := []string{"docs/auth.md", "readme.md"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for _, w := range want {
		found := false
		for _, id := range ids {
			if id == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing document %s in %v", w, ids)
		}
	}
}

func TestCollectDocuments_SkipsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.md"), []byte("plain text"))
	writeFile(t, filepath.Join(dir, "bad.md"), []byte{0xff, 0xfe, 0x00, 0x01})

	docs, skipped, err := collectDocuments(dir, []string{".md"})
	if err != nil {
		t.Fatalf("collectDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "good.md" {
		t.Errorf("docs = %v, want only good.md", docs)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestCollectDocuments_TruncatesLargeFiles(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, maxDocumentBytes+1024)
	for i := range big {
		big[i] = 'a'
	}
	writeFile(t, filepath.Join(dir, "big.md"), big)

	docs, _, err := collectDocuments(dir, []string{".md"})
	if err != nil {
		t.Fatalf("collectDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(docs))
	}
	if len(docs[0].Content) != maxDocumentBytes {
		t.Errorf("content length = %d, want cap %d", len(docs[0].Content), maxDocumentBytes)
	}
}

func TestCollectDocuments_ExtensionFilterIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "NOTES.MD"), []byte("shouting"))

	docs, _, err := collectDocuments(dir, []string{".md"})
	if err != nil {
		t.Fatalf("collectDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("docs = %v, want NOTES.MD included", docs)
	}
}
