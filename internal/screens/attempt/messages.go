package attempt

import (
	"time"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/screens/summary"
)

// startedMsg carries the service's handle on the attempt.
type startedMsg struct {
	Record api.AttemptRecord
	Err    error
}

// timerTickMsg is sent every second while the attempt runs.
type timerTickMsg time.Time

// submittedMsg is sent once the attempt has been scored and saved.
type submittedMsg struct {
	Outcome summary.Outcome
}
