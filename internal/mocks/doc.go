// Package mocks provides testify mock implementations of the store
// interfaces and the event emitter, shared by service and API tests.
//
// Usage:
//
//	tasks := new(mocks.TaskStore)
//	tasks.On("GetByID", mock.Anything, int64(1)).Return(task, nil)
//	defer tasks.AssertExpectations(t)
//
// WithTx returns the receiver unless an expectation supplies another store.
package mocks
