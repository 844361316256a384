package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

// DefaultTick is how often a displayed countdown is recomputed
const DefaultTick = time.Minute

// soonWindow is the number of minutes labelled "starting soon"
const soonWindow = 5

// TimeLeftLabel renders the time remaining until start as seen at now
func TimeLeftLabel(start, now int) string {
	diff := start - now
	switch {
	case diff <= 0:
		return "starting now"
	case diff <= soonWindow:
		return "starting soon"
	}

	h, m := diff/60, diff%60
	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%d hr", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%d min", m))
	}
	return "in " + strings.Join(parts, " ")
}

// Clock reports the current minutes since midnight
type Clock func() int

// WallClock returns a Clock that starts at base and advances with real time
func WallClock(base int, started time.Time) Clock {
	return func() int {
		m := base + int(time.Since(started)/time.Minute)
		if m >= MinutesPerDay {
			m = MinutesPerDay - 1
		}
		return m
	}
}

// Watch emits a countdown status now and on every tick after it. Once the
// start has been reached it waits one more tick, emits a hidden status and
// returns. It also returns when ctx is done, so no timer outlives the caller.
func Watch(ctx context.Context, start int, clock Clock, tick time.Duration, emit func(models.CountdownStatus)) {
	if tick <= 0 {
		tick = DefaultTick
	}

	reached := false
	status := func() {
		now := clock()
		emit(models.CountdownStatus{Label: TimeLeftLabel(start, now), Visible: true, Now: now})
		if start-now <= 0 {
			reached = true
		}
	}

	status()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if reached {
				emit(models.CountdownStatus{Visible: false, Now: clock()})
				return
			}
			status()
		}
	}
}
