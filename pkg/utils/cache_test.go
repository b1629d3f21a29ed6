package utils

import (
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	cache.Set("candidate-1", "AI generated description")

	got, ok := cache.Get("candidate-1")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got != "AI generated description" {
		t.Errorf("Get() = %q, want %q", got, "AI generated description")
	}
}

func TestTTLCache_MissingKey(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	if _, ok := cache.Get("missing"); ok {
		t.Error("不存在的键 Get() ok = true, want false")
	}
}

func TestTTLCache_Expiration(t *testing.T) {
	// 过期粒度为秒，用负 ttl 使条目立即过期
	cache := NewTTLCache(-2 * time.Second)

	cache.Set("k", "v")

	if _, ok := cache.Get("k"); ok {
		t.Error("过期条目 Get() ok = true, want false")
	}
	// 懒删除后条目应已移除
	if _, loaded := cache.items.Load("k"); loaded {
		t.Error("过期条目读取后应被删除")
	}
}

func TestTTLCache_Overwrite(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	cache.Set("k", "old")
	cache.Set("k", "new")

	got, _ := cache.Get("k")
	if got != "new" {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
}

func TestTTLCache_Delete(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	cache.Set("k", "v")
	cache.Delete("k")

	if _, ok := cache.Get("k"); ok {
		t.Error("删除后 Get() ok = true, want false")
	}
}
