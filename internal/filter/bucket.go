package filter

import (
	"time"

	"github.com/dharmasatrya/awardsearch/internal/timezone"
)

// NearWindowMinutes is the inclusive distance from the reference departure
// that still counts as "near".
const NearWindowMinutes = 300

type Bucket string

const (
	BucketNear Bucket = "near"
	BucketFar  Bucket = "far"
)

type Buckets[T any] struct {
	Near []T
	Far  []T
}

// BucketByTime splits candidates by how far their departure is from
// reference. Input order is kept within each bucket.
func BucketByTime[T any](candidates []T, departure func(T) time.Time, reference time.Time) Buckets[T] {
	b := Buckets[T]{Near: []T{}, Far: []T{}}
	for _, c := range candidates {
		dep := departure(c)
		if !dep.IsZero() && !reference.IsZero() && timezone.Distance(dep, reference) <= NearWindowMinutes*time.Minute {
			b.Near = append(b.Near, c)
			continue
		}
		b.Far = append(b.Far, c)
	}
	return b
}

// Active returns the bucket to show first: preferred, unless it is empty and
// the other one is not.
func (b Buckets[T]) Active(preferred Bucket) Bucket {
	if preferred != BucketFar {
		preferred = BucketNear
	}
	switch {
	case preferred == BucketNear && len(b.Near) == 0 && len(b.Far) > 0:
		return BucketFar
	case preferred == BucketFar && len(b.Far) == 0 && len(b.Near) > 0:
		return BucketNear
	}
	return preferred
}
