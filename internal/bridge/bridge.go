package bridge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Job performs one blocking fetch. It runs on its own goroutine.
type Job func(ctx context.Context) (Message, error)

// Bridge runs jobs off the owner goroutine and hands their results back
// through a bounded channel. Register, Request, DrainOne and InFlight must
// all be called from the owner goroutine; only the channel is shared.
type Bridge struct {
	ctx      context.Context
	results  chan Message
	jobs     [numKinds]Job
	inFlight [numKinds]bool
	logger   *zap.Logger
}

// New creates a bridge whose channel holds capacity messages.
// capacity must be at least NumKinds so a worker send never has to wait
// on more than one outstanding result per kind.
func New(ctx context.Context, capacity int, logger *zap.Logger) (*Bridge, error) {
	if capacity < NumKinds {
		return nil, fmt.Errorf("bridge capacity %d is below the number of kinds %d", capacity, NumKinds)
	}
	return &Bridge{
		ctx:     ctx,
		results: make(chan Message, capacity),
		logger:  logger.With(zap.String("component", "bridge")),
	}, nil
}

func (b *Bridge) Register(kind Kind, job Job) {
	b.jobs[kind] = job
}

// Request starts the job for kind unless one is already running.
// It reports whether a worker was started.
func (b *Bridge) Request(kind Kind) bool {
	if b.inFlight[kind] {
		b.logger.Debug("fetch already in flight", zap.Stringer("kind", kind))
		return false
	}
	job := b.jobs[kind]
	if job == nil {
		b.logger.Warn("no job registered", zap.Stringer("kind", kind))
		return false
	}

	b.inFlight[kind] = true
	go b.run(kind, job)
	return true
}

func (b *Bridge) run(kind Kind, job Job) {
	var msg Message
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("fetch job panicked", zap.Stringer("kind", kind), zap.Any("panic", r))
			msg = Failure{Origin: kind, Err: fmt.Errorf("job panicked: %v", r)}
		}
		b.results <- msg
	}()

	result, err := job(b.ctx)
	switch {
	case err != nil:
		msg = Failure{Origin: kind, Err: err}
	case result == nil:
		msg = Failure{Origin: kind, Err: errors.New("job returned no result")}
	case result.Kind() != kind:
		msg = Failure{Origin: kind, Err: fmt.Errorf("job returned a %s result", result.Kind())}
	default:
		msg = result
	}
}

// DrainOne receives at most one message without blocking and clears the
// in-flight flag of its kind.
func (b *Bridge) DrainOne() (Message, bool) {
	select {
	case msg := <-b.results:
		b.inFlight[msg.Kind()] = false
		return msg, true
	default:
		return nil, false
	}
}

func (b *Bridge) InFlight(kind Kind) bool {
	return b.inFlight[kind]
}
