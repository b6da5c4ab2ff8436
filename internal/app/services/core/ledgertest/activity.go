package ledgertest

import (
	"clinic-ledger-service/internal/app/models"
	"context"
	"sync"
)

// ActivityRecorder captures emitted activities.
type ActivityRecorder struct {
	mu         sync.Mutex
	activities []models.Activity
}

func (r *ActivityRecorder) Emit(ctx context.Context, activity models.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, activity)
}

func (r *ActivityRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.activities))
	for _, activity := range r.activities {
		actions = append(actions, activity.Action)
	}
	return actions
}

func (r *ActivityRecorder) Activities() []models.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Activity(nil), r.activities...)
}
