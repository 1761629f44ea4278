package inmemory

import (
	"sync"
	"time"

	"etherpets/internal/domain/pet"
)

type SweepSnapshot struct {
	Runs        uint64    `json:"runs"`
	LastScanned int       `json:"last_scanned"`
	LastUpdated int       `json:"last_updated"`
	LastAlerts  int       `json:"last_alerts"`
	LastFailed  int       `json:"last_failed"`
	LastRunAt   time.Time `json:"last_run_at"`
}

type Snapshot struct {
	ActionTotal   uint64            `json:"action_total"`
	ActionSuccess uint64            `json:"action_success"`
	ActionFailure uint64            `json:"action_failure"`
	ByAction      map[string]uint64 `json:"by_action"`
	FailByAction  map[string]uint64 `json:"fail_by_action"`
	Sweep         SweepSnapshot     `json:"decay_sweep"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	failure  uint64
	byAction map[string]uint64
	failedBy map[string]uint64
	sweep    SweepSnapshot
	now      func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
		failedBy: map[string]uint64{},
		now:      time.Now,
	}
}

func (r *Recorder) RecordSuccess(action pet.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[string(action)]++
}

func (r *Recorder) RecordFailure(action pet.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.failedBy[string(action)]++
}

func (r *Recorder) RecordSweep(scanned, updated, alerts, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep.Runs++
	r.sweep.LastScanned = scanned
	r.sweep.LastUpdated = updated
	r.sweep.LastAlerts = alerts
	r.sweep.LastFailed = failed
	r.sweep.LastRunAt = r.now()
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess: r.success,
		ActionFailure: r.failure,
		ActionTotal:   r.success + r.failure,
		ByAction:      make(map[string]uint64, len(r.byAction)),
		FailByAction:  make(map[string]uint64, len(r.failedBy)),
		Sweep:         r.sweep,
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	for k, v := range r.failedBy {
		out.FailByAction[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
