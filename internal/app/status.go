package app

import (
	"fmt"

	"sugarcube/internal/sims/automata3d"
)

// pendingStatus describes HUD edits that only take effect on regenerate.
// Rule edits apply on the next step and need no notice.
func pendingStatus(w *automata3d.World) string {
	if size, ok := w.PendingSize(); ok {
		return fmt.Sprintf("size %s applies on R", size)
	}
	return ""
}
