// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package timeutil

import (
	"time"
)

// TimeStamp defines a timestamp
type TimeStamp int64

// mock is NOT concurrency-safe, test helper only
var mock time.Time

// MockSet sets the time to a mocked time.Time
func MockSet(now time.Time) {
	mock = now
}

// MockUnset unsets the mocked time.Time
func MockUnset() {
	mock = time.Time{}
}

// TimeStampNow returns now as a TimeStamp
func TimeStampNow() TimeStamp {
	if !mock.IsZero() {
		return TimeStamp(mock.Unix())
	}
	return TimeStamp(time.Now().Unix())
}

// Add adds seconds and return sum
func (ts TimeStamp) Add(seconds int64) TimeStamp {
	return ts + TimeStamp(seconds)
}

// AddDuration adds time.Duration and return sum
func (ts TimeStamp) AddDuration(interval time.Duration) TimeStamp {
	return ts + TimeStamp(interval/time.Second)
}

// AsTime convert timestamp as time.Time in local location
func (ts TimeStamp) AsTime() time.Time {
	return time.Unix(int64(ts), 0)
}

// AsTimePtr convert timestamp as *time.Time in local location
func (ts TimeStamp) AsTimePtr() *time.Time {
	tm := time.Unix(int64(ts), 0)
	return &tm
}

// Format formats timestamp as given format
func (ts TimeStamp) Format(f string) string {
	return ts.AsTime().Format(f)
}

// FormatDate formats a date in YYYY-MM-DD
func (ts TimeStamp) FormatDate() string {
	return ts.Format("2006-01-02")
}

// IsZero is zero time
func (ts TimeStamp) IsZero() bool {
	return int64(ts) == 0
}
