package api

import "time"

// StableExpirationWindow is the granularity of StableExpiration.
const StableExpirationWindow = 30 * 24 * time.Hour

// StableExpiration returns now+after rounded down to a multiple of
// StableExpirationWindow since the Unix epoch, so repeated deployments
// inside one window produce the same API key expiry.
func StableExpiration(now time.Time, after time.Duration) time.Time {
	target := now.Add(after).UnixMilli()
	window := StableExpirationWindow.Milliseconds()
	return time.UnixMilli(target / window * window).UTC()
}
