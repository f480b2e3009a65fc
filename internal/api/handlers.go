package api

import (
	"context"
	"time"

	"github.com/vytor/quizengine/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	QuizService    services.QuizService
	AttemptService services.AttemptService
	DB             Pinger
	CORSOrigins    []string
	RequestTimeout time.Duration
}
