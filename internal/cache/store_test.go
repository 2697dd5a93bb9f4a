package cache

import (
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore()
	s.Set("k", "v", time.Minute)

	v, ok := s.Get("k")
	if !ok || v != "v" {
		t.Fatalf("get: got %v %v, want v true", v, ok)
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore()
	s.Set("k", "v", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected expired key to miss")
	}
}

func TestStoreMiss(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	s := NewStore()
	s.Set("/api/products?page=1", 1, time.Minute)
	s.Set("/api/products?page=2", 2, time.Minute)
	s.Set("/api/orders", 3, time.Minute)

	s.DeletePrefix("/api/products")

	if _, ok := s.Get("/api/products?page=1"); ok {
		t.Error("page=1 survived prefix delete")
	}
	if _, ok := s.Get("/api/products?page=2"); ok {
		t.Error("page=2 survived prefix delete")
	}
	if _, ok := s.Get("/api/orders"); !ok {
		t.Error("unrelated key was deleted")
	}
}
