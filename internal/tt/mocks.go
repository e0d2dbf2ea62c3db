// Package tt provides shared test doubles for the weave test suites.
package tt

import (
	"context"
	"errors"

	"github.com/blockweave/weave"
)

// MockModel is a scriptable weave.Model. Queue responses and errors with
// AddResponse/AddError; each Complete call consumes the next queued entry in
// order and records the prompt it was given.
type MockModel struct {
	responses []string
	errors    []error
	callCount int

	// CapturedPrompts stores the prompt passed to each Complete call,
	// populated automatically.
	CapturedPrompts []string
}

// NewMockModel creates an empty MockModel. A call with nothing queued fails.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddResponse queues a successful response. Returns the mock for chaining.
func (m *MockModel) AddResponse(response string) *MockModel {
	m.responses = append(m.responses, response)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues a failing call. Returns the mock for chaining.
func (m *MockModel) AddError(err error) *MockModel {
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of Complete calls made so far.
func (m *MockModel) CallCount() int {
	return m.callCount
}

// Complete implements weave.Model.
func (m *MockModel) Complete(_ context.Context, prompt string) (string, error) {
	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)

	if idx >= len(m.responses) {
		return "", errors.New("mock model: no response queued for call")
	}
	if err := m.errors[idx]; err != nil {
		return "", err
	}
	return m.responses[idx], nil
}

// Compile-time check that MockModel implements weave.Model.
var _ weave.Model = (*MockModel)(nil)
