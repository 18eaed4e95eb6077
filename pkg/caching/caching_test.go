package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	if _, ok := c.Get("https://example.com"); ok {
		t.Fatal("Get() on empty cache returned a hit")
	}

	want := &Entry{Body: []byte("<p>hi</p>"), Charset: "utf-8"}
	if err := c.Set("https://example.com", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := c.Get("https://example.com")
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if string(got.Body) != string(want.Body) || got.Charset != want.Charset {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCache_Expired(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set("https://example.com", &Entry{Body: []byte("x")}); err != nil {
		t.Fatal(err)
	}

	old := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(filepath.Join(dir, c.key("https://example.com")), old, old); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("https://example.com"); ok {
		t.Error("Get() returned an expired entry")
	}
}
