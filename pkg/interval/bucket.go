package interval

import (
	"time"
)

// CalculateBucketTime calculates the start time of the interval bucket
func (i Interval) CalculateBucketTime(timestamp time.Time) time.Time {
	day := timestamp
	if i.Name == Interval1w.Name {
		// Monday
		days := int(timestamp.Weekday())
		if days == 0 {
			days = 7
		}
		day = timestamp.AddDate(0, 0, 1-days)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, timestamp.Location())
}

// IsInBucket checks if a timestamp falls within the same bucket as another timestamp
func (i Interval) IsInBucket(timestamp1, timestamp2 time.Time) bool {
	return i.CalculateBucketTime(timestamp1).Equal(i.CalculateBucketTime(timestamp2))
}
