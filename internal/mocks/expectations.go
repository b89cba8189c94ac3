package mocks

import "github.com/stretchr/testify/mock"

// hasExpectation reports whether an expectation was registered for method.
func hasExpectation(m *mock.Mock, method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}
