package schedules

import (
	"context"

	"github.com/KyleBrandon/emaux-server/pkg/emaux"
)

type (
	ScheduleClient interface {
		GetSchedules(ctx context.Context) ([]emaux.Schedule, error)
	}

	Handler struct {
		pump ScheduleClient
	}
)
