// Package sweeper runs the periodic control loop that expires old rooms.
package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickshare/service/internal/metrics"
	"github.com/quickshare/service/internal/room"
)

// ErrInvalidRetention is returned when the retention window is missing or
// not a positive number of days. The sweeper must never run with an
// ambiguous threshold.
var ErrInvalidRetention = errors.New("retention window must be a positive number of days")

// RoomExpirer is the slice of the room service the sweeper drives.
type RoomExpirer interface {
	ExpiredRoomIDs(ctx context.Context, cutoff time.Time) ([]string, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

// Sweeper periodically scans for rooms older than the retention window and
// cascade-deletes each one. No state is persisted between ticks beyond the
// room and content records themselves.
type Sweeper struct {
	rooms     RoomExpirer
	retention time.Duration
	interval  time.Duration
	log       zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	done      chan struct{}
}

// New creates a Sweeper. retentionDays must be positive.
func New(rooms RoomExpirer, retentionDays int, interval time.Duration, log zerolog.Logger, m *metrics.Metrics) (*Sweeper, error) {
	if retentionDays <= 0 {
		return nil, ErrInvalidRetention
	}
	return &Sweeper{
		rooms:     rooms,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  interval,
		log:       log,
		metrics:   m,
		now:       time.Now,
		done:      make(chan struct{}),
	}, nil
}

// Run drives the sweep on a fixed interval until ctx is cancelled. An
// in-flight sweep finishes before Run returns; Done is closed afterwards.
// Sweeps run on this goroutine only, so a slow sweep stretches its tick
// rather than piling up concurrent runs.
func (s *Sweeper) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Dur("retention", s.retention).Msg("expiry sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Done is closed once Run has returned.
func (s *Sweeper) Done() <-chan struct{} {
	return s.done
}

// Sweep performs one scan-and-delete cycle. Each room's failure is
// isolated: logged with the room identifier, then the loop moves on. An
// already-deleted room resolves to a no-op, so overlapping or partially
// failed runs are safe to repeat.
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)

	expired, err := s.rooms.ExpiredRoomIDs(ctx, cutoff)
	if err != nil {
		s.metrics.SweepScanFailures.Inc()
		s.log.Error().Err(err).Msg("expired-room scan failed, skipping tick")
		return
	}

	s.log.Info().Int("expired", len(expired)).Time("cutoff", cutoff).Msg("sweep tick")

	// Sequential on purpose: bounds peak load on the store and storage.
	for _, roomID := range expired {
		err := s.rooms.DeleteRoom(ctx, roomID)
		switch {
		case errors.Is(err, room.ErrNotFound):
			// Deleted since the scan, nothing to do.
		case err != nil:
			s.metrics.RoomDeleteFailures.Inc()
			s.log.Error().Err(err).Str("roomId", roomID).Msg("failed to delete expired room")
		default:
			s.metrics.RoomsExpired.Inc()
			s.log.Info().Str("roomId", roomID).Msg("deleted expired room")
		}
	}

	s.metrics.SweepsTotal.Inc()
}
