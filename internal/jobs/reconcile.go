package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/config"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

// StartRoomReconcileJob periodically re-asserts occupied on rooms whose
// reservation is in house but whose cached status drifted. It never moves a
// room out of maintenance; that stays a housekeeping decision.
func StartRoomReconcileJob(ctx context.Context, cfg config.Config, store *repository.Store) {
	if !cfg.RoomReconcileEnabled {
		return
	}
	interval := cfg.RoomReconcileInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				fixed, err := store.ReconcileRoomStatus(tickCtx)
				cancel()
				if err != nil {
					log.Printf("room reconcile job error: %v", err)
					continue
				}
				if fixed > 0 {
					log.Printf("room reconcile job corrected %d rooms", fixed)
				}
			}
		}
	}()
}
