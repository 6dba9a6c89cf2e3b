package translate

import (
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "translations.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("cat", "zh-CN"); ok {
		t.Error("Get() on empty store should miss")
	}

	if err := store.Put("cat", "zh-CN", "猫"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	translation, ok := store.Get("cat", "zh-CN")
	if !ok {
		t.Fatal("Get() after Put() should hit")
	}
	if translation != "猫" {
		t.Errorf("Get() = %q, want %q", translation, "猫")
	}

	// Same word under another locale is a separate row.
	if _, ok := store.Get("cat", "zh"); ok {
		t.Error("Get() with different locale should miss")
	}
}

func TestStoreReplace(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "translations.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	store.Put("cat", "zh-CN", "猫")
	store.Put("cat", "zh-CN", "小猫")

	translation, ok := store.Get("cat", "zh-CN")
	if !ok || translation != "小猫" {
		t.Errorf("Get() = %q, %v, want replaced value", translation, ok)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after replace", count)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	store.Put("cat", "zh-CN", "猫")
	store.Close()

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() reopen error = %v", err)
	}
	defer reopened.Close()

	translation, ok := reopened.Get("cat", "zh-CN")
	if !ok || translation != "猫" {
		t.Errorf("Get() after reopen = %q, %v, want stored value", translation, ok)
	}
}
