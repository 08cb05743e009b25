package scan

import (
	"context"

	mlog "mirava/internal/log"
	"mirava/internal/state"
)

// Sync reconciles c with the files under root and then drops every record
// whose file was not found. A failed or cancelled scan prunes nothing.
func Sync(ctx context.Context, root string, c *state.Course, r *Reconciler) (Report, error) {
	rep, err := r.Reconcile(ctx, root, c)
	if err != nil {
		return rep, err
	}

	rep.Removed = c.PruneAbsent()
	if len(rep.Removed) > 0 {
		log := mlog.WithComponent("scan")
		for _, v := range rep.Removed {
			log.Debug().Str("file", v.Path).Msg("no longer on disk, dropped")
		}
	}
	return rep, nil
}
