package video

import (
	"container/list"
	"image"
	"math"
)

// CacheKey identifies a reusable mask or shadow. Two keys are equal iff all
// five fields are equal.
type CacheKey struct {
	OffsetX       int
	OffsetY       int
	Radius        int
	ShadowBlur    int
	ShadowOpacity float64
}

// defaultCacheSize bounds each table. A pipeline run touches one key per
// distinct style combination, so any bound above one keeps the per-run hit
// rate at 100% while preventing unbounded growth across runs.
const defaultCacheSize = 32

// maskShadowCache memoizes rounded-corner masks and blurred shadow layers.
// It is owned by a single pipeline and accessed only from its frame loop;
// callers must not mutate returned images.
type maskShadowCache struct {
	masks   *lruTable
	shadows *lruTable
}

func newMaskShadowCache() *maskShadowCache {
	return &maskShadowCache{
		masks:   newLRUTable(defaultCacheSize),
		shadows: newLRUTable(defaultCacheSize),
	}
}

// mask returns the alpha mask for a foreground of the given size, building
// it on first use. A zero radius means fully opaque: no mask, no caching.
func (c *maskShadowCache) mask(key CacheKey, width, height int) *image.Alpha {
	if key.Radius <= 0 {
		return nil
	}
	if cached, ok := c.masks.get(key); ok {
		return cached.(*image.Alpha)
	}
	mask := roundedRectMask(width, height, key.Radius)
	c.masks.put(key, mask)
	return mask
}

// shadow returns the canvas-sized shadow layer for a foreground of the
// given size at the key's offset. A zero blur means fully transparent: nil,
// no caching.
func (c *maskShadowCache) shadow(key CacheKey, canvasWidth, canvasHeight, fgWidth, fgHeight int) *image.RGBA {
	if key.ShadowBlur <= 0 {
		return nil
	}
	if cached, ok := c.shadows.get(key); ok {
		return cached.(*image.RGBA)
	}

	alpha := image.NewAlpha(image.Rect(0, 0, canvasWidth, canvasHeight))
	fill := uint8(math.Round(255 * key.ShadowOpacity))
	fillRoundedRect(alpha, key.OffsetX, key.OffsetY, key.OffsetX+fgWidth, key.OffsetY+fgHeight, key.Radius, fill)
	alpha = gaussianBlurAlpha(alpha, key.ShadowBlur)

	// Black shadow: in premultiplied RGBA only the alpha channel carries
	// information.
	shadow := image.NewRGBA(alpha.Bounds())
	for i, a := range alpha.Pix {
		shadow.Pix[i*4+3] = a
	}
	c.shadows.put(key, shadow)
	return shadow
}

// lruTable is a small bounded cache: map for lookup, list for recency.
type lruTable struct {
	capacity int
	order    *list.List
	items    map[CacheKey]*list.Element
}

type lruEntry struct {
	key   CacheKey
	value any
}

func newLRUTable(capacity int) *lruTable {
	return &lruTable{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[CacheKey]*list.Element),
	}
}

func (t *lruTable) get(key CacheKey) (any, bool) {
	el, ok := t.items[key]
	if !ok {
		return nil, false
	}
	t.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (t *lruTable) put(key CacheKey, value any) {
	if el, ok := t.items[key]; ok {
		t.order.MoveToFront(el)
		el.Value.(*lruEntry).value = value
		return
	}
	t.items[key] = t.order.PushFront(&lruEntry{key: key, value: value})
	if t.order.Len() > t.capacity {
		oldest := t.order.Back()
		t.order.Remove(oldest)
		delete(t.items, oldest.Value.(*lruEntry).key)
	}
}

func (t *lruTable) len() int {
	return t.order.Len()
}
