package quest

import (
	"errors"
	"time"
)

var (
	ErrNotCompleted   = errors.New("quest not completed")
	ErrAlreadyClaimed = errors.New("quest reward already claimed")
)

type Progress struct {
	Current     int        `json:"current"`
	Completed   bool       `json:"completed"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	WindowStart time.Time  `json:"windowStart"`
}

func WindowStart(period Period, now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	if period == PeriodWeekly {
		return midnight.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
	}
	return midnight
}

func WindowEnd(period Period, start time.Time) time.Time {
	if period == PeriodWeekly {
		return start.AddDate(0, 0, 7)
	}
	return start.AddDate(0, 0, 1)
}

// CheckProgress folds a fresh event count into the stored progress. A stored
// entry from an earlier window is discarded first.
func CheckProgress(def Definition, prev Progress, count int, now time.Time, loc *time.Location) Progress {
	start := WindowStart(def.Period, now, loc)
	if !prev.WindowStart.Equal(start) {
		prev = Progress{WindowStart: start}
	}
	prev.Current = min(count, def.Objective.Target)
	if prev.Current >= def.Objective.Target {
		prev.Completed = true
	}
	return prev
}

func Claim(def Definition, p Progress, now time.Time) (Progress, Reward, error) {
	if !p.Completed {
		return p, Reward{}, ErrNotCompleted
	}
	if p.Claimed {
		return p, Reward{}, ErrAlreadyClaimed
	}
	p.Claimed = true
	at := now
	p.ClaimedAt = &at
	return p, def.Reward, nil
}
