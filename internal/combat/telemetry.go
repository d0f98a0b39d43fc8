package combat

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Telemetry is the combat kernel's verbose-shot-log channel (spec §6,
// "verbose_shot_logs"). Every shot can in principle log its full
// resolution breakdown, but a sustained-fire weapon at 900 RPM would
// otherwise flood the logger; throttling it is grounded directly on the
// teacher's own event_log.go, which rate-limits its Emit path with
// golang.org/x/time/rate rather than dropping silently or logging
// unconditionally.
type Telemetry struct {
	enabled bool
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewTelemetry builds a throttled shot-log channel. ratePerSec caps how
// many verbose entries per second are actually written; burst allows a
// short spike (e.g. the opening volley of a round) through immediately.
func NewTelemetry(enabled bool, ratePerSec float64, burst int, logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ratePerSec <= 0 {
		ratePerSec = 20
	}
	if burst <= 0 {
		burst = 5
	}
	return &Telemetry{
		enabled: enabled,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger,
	}
}

// LogShot records one shot's resolution breakdown if verbose logging is
// enabled and the rate limiter still has budget; callers never block
// (the teacher's own ratelimit middleware rejects rather than waits, and
// a blocking log call has no place on the kernel's hot path).
func (t *Telemetry) LogShot(shooterID, targetID OperatorID, part BodyPart, damage float32, hit bool) {
	if t == nil || !t.enabled {
		return
	}
	if !t.limiter.Allow() {
		return
	}
	t.logger.Debug("shot resolved",
		zap.String("shooter", string(shooterID)),
		zap.String("target", string(targetID)),
		zap.Uint8("body_part", uint8(part)),
		zap.Float32("damage", damage),
		zap.Bool("hit", hit),
	)
}
