package metrics

import (
	"fmt"
	"strings"
	"time"
)

// FormatResolutionTime renders a duration as "[D day[s], ]H:MM:SS[.ffffff]".
// Negative durations borrow from the day count so that the clock part stays positive,
// e.g. -1s is "-1 day, 23:59:59".
func FormatResolutionTime(d time.Duration) string {
	micros := d.Round(time.Microsecond).Microseconds()

	const (
		microsPerSecond = int64(1_000_000)
		microsPerDay    = 24 * 60 * 60 * microsPerSecond
	)

	days := floorDiv(micros, microsPerDay)
	rem := micros - days*microsPerDay

	seconds := rem / microsPerSecond
	fraction := rem % microsPerSecond

	var b strings.Builder
	if days != 0 {
		unit := "days"
		if days == 1 || days == -1 {
			unit = "day"
		}
		fmt.Fprintf(&b, "%d %s, ", days, unit)
	}

	fmt.Fprintf(&b, "%d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
	if fraction != 0 {
		fmt.Fprintf(&b, ".%06d", fraction)
	}

	return b.String()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
