package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNeedsRecheckDetectsNewAndChangedDocuments(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "system.xta")
	writeFile(t, doc, "clock x;")

	c := New(filepath.Join(dir, "cache.json"))

	changed, err := c.NeedsRecheck(doc)
	if err != nil {
		t.Fatalf("NeedsRecheck returned %v", err)
	}
	if !changed {
		t.Fatalf("expected a never-seen document to need a recheck")
	}

	changed, err = c.NeedsRecheck(doc)
	if err != nil {
		t.Fatalf("NeedsRecheck returned %v", err)
	}
	if changed {
		t.Fatalf("expected an unchanged document not to need a recheck")
	}

	writeFile(t, doc, "clock x, y;")
	changed, err = c.NeedsRecheck(doc)
	if err != nil {
		t.Fatalf("NeedsRecheck returned %v", err)
	}
	if !changed {
		t.Fatalf("expected an edited document to need a recheck")
	}
}

func TestSaveAndLoadRoundTripsDigests(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "system.xta")
	writeFile(t, doc, "clock x;")
	cachePath := filepath.Join(dir, "sub", "cache.json")

	c := New(cachePath)
	if _, err := c.NeedsRecheck(doc); err != nil {
		t.Fatalf("NeedsRecheck returned %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save returned %v", err)
	}

	loaded, err := Load(cachePath)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	changed, err := loaded.NeedsRecheck(doc)
	if err != nil {
		t.Fatalf("NeedsRecheck returned %v", err)
	}
	if changed {
		t.Fatalf("expected the reloaded cache to already know about %s", doc)
	}
}

func TestLoadMissingCacheIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if len(c.Digests) != 0 {
		t.Fatalf("expected an empty cache, got %+v", c.Digests)
	}
}

func TestForgetAndClear(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "system.xta")
	writeFile(t, doc, "clock x;")

	c := New(filepath.Join(dir, "cache.json"))
	if err := c.UpdateDigest(doc); err != nil {
		t.Fatalf("UpdateDigest returned %v", err)
	}
	if _, ok := c.Digests[doc]; !ok {
		t.Fatalf("expected %s to be tracked after UpdateDigest", doc)
	}

	c.Forget(doc)
	if _, ok := c.Digests[doc]; ok {
		t.Fatalf("expected Forget to drop %s", doc)
	}

	if err := c.UpdateDigest(doc); err != nil {
		t.Fatalf("UpdateDigest returned %v", err)
	}
	c.Clear()
	if len(c.Digests) != 0 {
		t.Fatalf("expected Clear to empty the cache, got %+v", c.Digests)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
