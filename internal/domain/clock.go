package domain

import "time"

// Now is the clock used for entity timestamps. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
