package ports

import "etherpets/internal/domain/pet"

type ActionMetrics interface {
	RecordSuccess(action pet.ActionType)
	RecordFailure(action pet.ActionType)
}

type SweepMetrics interface {
	RecordSweep(scanned, updated, alerts, failed int)
}
