package usecase

import (
	"context"
	"time"
)

// Probe reports whether one dependency is reachable.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	// Check returns overall status plus one entry per probe. Healthy is
	// false when any probe fails.
	Check(ctx context.Context) (status map[string]string, healthy bool)
}

type healthUsecase struct {
	probes map[string]Probe
}

func NewHealthUsecase(probes map[string]Probe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
