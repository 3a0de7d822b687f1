// Package dates distributes message dates and email volumes across
// narrative time windows.
package dates

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Spread returns n dates spanning [start, end], earliest first. A single
// date lands at the midpoint of the window; multiple dates are evenly
// spaced with the first at start and the last at end.
func Spread(n int, start, end time.Time) ([]time.Time, error) {
	if n <= 0 {
		return nil, fmt.Errorf("date count must be positive, got %d", n)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("window end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	if n == 1 {
		return []time.Time{start.Add(end.Sub(start) / 2)}, nil
	}

	span := end.Sub(start)
	step := span / time.Duration(n-1)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(step * time.Duration(i))
	}
	// Guard against duration truncation drifting the last date.
	out[n-1] = end
	return out, nil
}

// TargetEmailVolume computes the email volume a beat should carry from
// its day span and the number of key roles in play. perRoleDay is the
// configured average emails per key role per day; the result is always
// at least 1 so no beat plans to zero.
func TargetEmailVolume(start, end time.Time, keyRoleCount int, perRoleDay float64) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("window end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if keyRoleCount <= 0 {
		return 0, fmt.Errorf("key role count must be positive, got %d", keyRoleCount)
	}
	if perRoleDay <= 0 {
		return 0, fmt.Errorf("per-role daily volume must be positive, got %g", perRoleDay)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	volume := int(math.Ceil(float64(days) * float64(keyRoleCount) * perRoleDay))
	if volume < 1 {
		volume = 1
	}
	return volume, nil
}

// Thread size partitioning bounds. Most simulated conversations are
// short; the exponential draw skews toward minSize and maxSize caps the
// occasional long tail.
const (
	minThreadSize = 1
	maxThreadSize = 15
)

// PartitionEmailCounts splits a total email volume into per-thread
// sizes. Every size is at least 1, sizes sum exactly to total, and the
// distribution skews short.
func PartitionEmailCounts(total int, rng *rand.Rand) ([]int, error) {
	if total <= 0 {
		return nil, fmt.Errorf("email total must be positive, got %d", total)
	}

	var sizes []int
	remaining := total
	for remaining > 0 {
		size := minThreadSize + int(rng.ExpFloat64()*2.5)
		if size > maxThreadSize {
			size = maxThreadSize
		}
		if size > remaining {
			size = remaining
		}
		sizes = append(sizes, size)
		remaining -= size
	}
	return sizes, nil
}
