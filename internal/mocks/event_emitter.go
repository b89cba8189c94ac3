package mocks

import (
	"context"

	"github.com/phrazzld/todolist-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// EventEmitter is a mock of events.EventEmitter.
type EventEmitter struct {
	mock.Mock
}

var _ events.EventEmitter = (*EventEmitter)(nil)

func (m *EventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
