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

	key := Key("content", "config")
	if _, ok := c.Get(key); ok {
		t.Fatal("Get() hit on empty cache")
	}

	if err := c.Set(key, []byte(`{"name":"goblin"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if string(data) != `{"name":"goblin"}` {
		t.Errorf("Get() = %s", data)
	}
}

func TestCache_Expired(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	key := Key("a", "b")
	if err := c.Set(key, []byte("x")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(dir, key), old, old); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	if _, ok := c.Get(key); ok {
		t.Error("Get() hit on expired entry")
	}

	// Zero TTL never expires
	forever, _ := NewCache(dir, 0)
	if _, ok := forever.Get(key); !ok {
		t.Error("Get() miss with zero TTL")
	}
}

func TestKey(t *testing.T) {
	base := Key("content", "config")
	tests := []struct {
		name string
		key  string
	}{
		{"content differs", Key("other", "config")},
		{"config differs", Key("content", "other")},
		{"separator", Key("contentconfig", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == base {
				t.Error("Key() collision")
			}
		})
	}

	if Key("content", "config") != base {
		t.Error("Key() not deterministic")
	}
}
