package video

import (
	"fmt"
	"testing"
)

func baseKey() CacheKey {
	return CacheKey{OffsetX: 40, OffsetY: 30, Radius: 10, ShadowBlur: 8, ShadowOpacity: 0.5}
}

func TestCacheMaskIdentity(t *testing.T) {
	c := newMaskShadowCache()
	key := baseKey()

	first := c.mask(key, 100, 80)
	second := c.mask(key, 100, 80)
	if first == nil {
		t.Fatal("mask with radius > 0 should not be nil")
	}
	if first != second {
		t.Error("identical keys must return the identical cached mask")
	}
}

func TestCacheShadowIdentity(t *testing.T) {
	c := newMaskShadowCache()
	key := baseKey()

	first := c.shadow(key, 200, 150, 100, 80)
	second := c.shadow(key, 200, 150, 100, 80)
	if first == nil {
		t.Fatal("shadow with blur > 0 should not be nil")
	}
	if first != second {
		t.Error("identical keys must return the identical cached shadow")
	}
}

func TestCacheDistinctKeys(t *testing.T) {
	c := newMaskShadowCache()
	base := baseKey()

	variants := []CacheKey{
		{OffsetX: base.OffsetX + 1, OffsetY: base.OffsetY, Radius: base.Radius, ShadowBlur: base.ShadowBlur, ShadowOpacity: base.ShadowOpacity},
		{OffsetX: base.OffsetX, OffsetY: base.OffsetY + 1, Radius: base.Radius, ShadowBlur: base.ShadowBlur, ShadowOpacity: base.ShadowOpacity},
		{OffsetX: base.OffsetX, OffsetY: base.OffsetY, Radius: base.Radius + 1, ShadowBlur: base.ShadowBlur, ShadowOpacity: base.ShadowOpacity},
		{OffsetX: base.OffsetX, OffsetY: base.OffsetY, Radius: base.Radius, ShadowBlur: base.ShadowBlur + 1, ShadowOpacity: base.ShadowOpacity},
		{OffsetX: base.OffsetX, OffsetY: base.OffsetY, Radius: base.Radius, ShadowBlur: base.ShadowBlur, ShadowOpacity: base.ShadowOpacity + 0.1},
	}

	baseMask := c.mask(base, 100, 80)
	baseShadow := c.shadow(base, 200, 150, 100, 80)
	for i, v := range variants {
		if m := c.mask(v, 100, 80); m == baseMask {
			t.Errorf("variant %d returned the base key's mask", i)
		}
		if s := c.shadow(v, 200, 150, 100, 80); s == baseShadow {
			t.Errorf("variant %d returned the base key's shadow", i)
		}
	}
}

func TestCacheZeroRadiusAndBlur(t *testing.T) {
	c := newMaskShadowCache()

	key := baseKey()
	key.Radius = 0
	if m := c.mask(key, 100, 80); m != nil {
		t.Error("radius 0 means fully opaque: mask must be nil and uncached")
	}
	if c.masks.len() != 0 {
		t.Error("radius 0 must not populate the mask table")
	}

	key = baseKey()
	key.ShadowBlur = 0
	if s := c.shadow(key, 200, 150, 100, 80); s != nil {
		t.Error("blur 0 means fully transparent: shadow must be nil and uncached")
	}
	if c.shadows.len() != 0 {
		t.Error("blur 0 must not populate the shadow table")
	}
}

func TestLRUEviction(t *testing.T) {
	table := newLRUTable(3)
	keys := make([]CacheKey, 4)
	for i := range keys {
		keys[i] = CacheKey{OffsetX: i}
		table.put(keys[i], fmt.Sprintf("v%d", i))
	}

	if table.len() != 3 {
		t.Fatalf("table length = %d, want 3", table.len())
	}
	if _, ok := table.get(keys[0]); ok {
		t.Error("oldest entry should have been evicted")
	}
	for _, k := range keys[1:] {
		if _, ok := table.get(k); !ok {
			t.Errorf("entry %v missing after eviction of oldest", k)
		}
	}
}

func TestLRURecencyOnGet(t *testing.T) {
	table := newLRUTable(2)
	a, b, c := CacheKey{OffsetX: 1}, CacheKey{OffsetX: 2}, CacheKey{OffsetX: 3}

	table.put(a, "a")
	table.put(b, "b")
	table.get(a) // refresh a; b becomes oldest
	table.put(c, "c")

	if _, ok := table.get(a); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := table.get(b); ok {
		t.Error("least recently used entry survived")
	}
}
