package helpers

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func termWidth() int {
	width, _, err := term.GetSize(0)
	if !IsNil(err) {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Microsecond {
		return time.Nanosecond
	}
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

// CreateProgressBar prints a line to out at exponentially spaced intervals.
// Set and Add are safe to call from multiple goroutines.
func CreateProgressBar(out io.Writer, total int, label string) ProgressBar {
	value := int64(0)

	startTime := time.Now()
	updateDuration := int64(time.Millisecond * 200)

	var update = func(forceUpdate bool) {
		current := atomic.LoadInt64(&value)
		elapsed := time.Since(startTime)

		shouldUpdate := forceUpdate
		if limit := atomic.LoadInt64(&updateDuration); int64(elapsed) > limit {
			shouldUpdate = atomic.CompareAndSwapInt64(&updateDuration, limit, limit*2) || shouldUpdate
		}
		if !shouldUpdate || total <= 0 {
			return
		}

		if current > int64(total) {
			current = int64(total)
		} else if current == 0 {
			return
		}

		perSecond := int64(float64(current) / elapsed.Seconds())

		percent := float64(current) / float64(total)
		percentStr := fmt.Sprintf("%3d", int(percent*100))
		expectedFinish := time.Duration(float64(elapsed) / percent)
		unit := unitForDuration(elapsed)

		prefix := fmt.Sprintf("%s %s%% ", label, percentStr)
		suffix := fmt.Sprintf(" %v => %v @ %v/s", elapsed.Round(unit), expectedFinish.Round(unit), humanize.Comma(perSecond))

		width := termWidth()
		textLen := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix)
		totalProgressLen := MaxInt(width-textLen, 0)
		currentProgressLen := MinInt(MaxInt(int(float64(totalProgressLen)*percent), 0), totalProgressLen)
		remainingProgressLen := totalProgressLen - currentProgressLen

		fmt.Fprintf(out, "%s%s%s%s\n", prefix, strings.Repeat("=", currentProgressLen), strings.Repeat(" ", remainingProgressLen), suffix)
	}
	return ProgressBar{
		func(i int) {
			atomic.StoreInt64(&value, int64(i))
			update(false)
		},
		func(i int) {
			atomic.AddInt64(&value, int64(i))
			update(false)
		}, func() {
			update(true)
		},
	}
}
