// Package gradient precomputes the radial gradient sprites used to draw
// particles, keyed by particle size rounded to the nearest half pixel.
package gradient

import (
	"fmt"
	"image/color"
	"math"

	"holo-fx/internal/core"
)

// Bucket range covered by the cache.
const (
	MinBucket  = 1.0
	MaxBucket  = 3.0
	BucketStep = 0.5

	bucketCount = int((MaxBucket-MinBucket)/BucketStep) + 1
)

// GlowScale is the ratio between a sprite radius and the particle size.
const GlowScale = 2.0

// Falloff is the white-to-transparent ramp each sprite is built from. Color
// is applied at draw time via the tint, so the cache does not depend on the
// theme.
var Falloff = core.Gradient{Stops: []core.GradientStop{
	{Offset: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	{Offset: 0.35, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 200}},
	{Offset: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
}}

// Cache holds one resource per size bucket. It is immutable once built.
type Cache struct {
	entries [bucketCount]core.Resource
}

// Build precomputes every bucket against s.
func Build(s core.Surface) (*Cache, error) {
	c := &Cache{}
	for i := range c.entries {
		size := MinBucket + float64(i)*BucketStep
		res, err := s.RadialGradient(size*GlowScale, Falloff)
		if err != nil {
			c.Release()
			return nil, fmt.Errorf("build gradient bucket %.1f: %w", size, err)
		}
		c.entries[i] = res
	}
	return c, nil
}

// Get returns the resource for size. Sizes outside the bucket range resolve
// to the smallest bucket.
func (c *Cache) Get(size float64) core.Resource {
	return c.entries[index(size)]
}

// Release frees the native memory of every bucket. The cache must not be
// used afterwards. Calling Release on a nil cache is a no-op.
func (c *Cache) Release() {
	if c == nil {
		return
	}
	for i, res := range c.entries {
		if r, ok := res.(core.Releaser); ok {
			r.Release()
		}
		c.entries[i] = nil
	}
}

// Bucket returns the bucket key size resolves to.
func Bucket(size float64) float64 {
	return MinBucket + float64(index(size))*BucketStep
}

// Len returns the number of buckets.
func (c *Cache) Len() int { return len(c.entries) }

func index(size float64) int {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return 0
	}
	rounded := math.Round(size/BucketStep) * BucketStep
	i := int(math.Round((rounded - MinBucket) / BucketStep))
	if i < 0 || i >= bucketCount {
		return 0
	}
	return i
}
