// Package calendar turns a sparse per-day submission map into aggregate
// statistics and a fixed-width heatmap grid. Everything here is pure: the
// reference instant is always passed in by the caller.
package calendar

import (
	"sort"
	"time"
)

// SecondsPerDay is the width of a day bucket.
const SecondsPerDay = 86400

// DayBucket is a Unix timestamp in seconds truncated to 00:00 UTC.
type DayBucket int64

// BucketOf returns the day bucket containing t.
func BucketOf(t time.Time) DayBucket {
	ts := t.Unix()
	rem := ts % SecondsPerDay
	if rem < 0 {
		rem += SecondsPerDay
	}
	return DayBucket(ts - rem)
}

// Time returns the UTC instant at the start of the bucket.
func (b DayBucket) Time() time.Time {
	return time.Unix(int64(b), 0).UTC()
}

// Next returns the following day's bucket.
func (b DayBucket) Next() DayBucket {
	return b + SecondsPerDay
}

// SubmissionCalendar maps day buckets to submission counts.
type SubmissionCalendar map[DayBucket]int

// SortedKeys returns the calendar's buckets in chronological order.
func (c SubmissionCalendar) SortedKeys() []DayBucket {
	keys := make([]DayBucket, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
