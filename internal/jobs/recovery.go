package jobs

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// runWithRecovery runs fn, logging its start, duration and any panic.
func runWithRecovery(log *slog.Logger, name string, fn func()) {
	start := time.Now()
	log.Info("job started", slog.String("job", name))

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked",
				slog.String("job", name),
				slog.String("panic", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
			return
		}
		log.Info("job completed", slog.String("job", name), slog.Duration("duration", time.Since(start)))
	}()

	fn()
}
