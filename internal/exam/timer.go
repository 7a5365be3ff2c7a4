package exam

import (
	"fmt"
	"sync"
	"time"
)

// ticker drives the one-second exam clock. It is owned by the Manager and
// replaced only by Start/Submit/Cancel, which keeps the "at most one live
// timer" invariant structural instead of ambient.
type ticker struct {
	stop chan struct{}
	once sync.Once
}

// startTicker fires tick roughly once per interval until stopped. The ticker
// passes itself to the callback so a straggler tick from a replaced timer can
// be recognized and dropped.
func startTicker(interval time.Duration, tick func(*ticker)) *ticker {
	t := &ticker{stop: make(chan struct{})}
	go func() {
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				tick(t)
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop cancels the ticker. Stopping twice is a no-op.
func (t *ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// FormatClock renders elapsed seconds as MM:SS for display.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
