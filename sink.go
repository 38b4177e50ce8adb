package modelcheck

import (
	"fmt"

	"github.com/stretchr/testify/assert"
)

// Sink receives every assertion made by the validator
type Sink interface {
	True(condition bool, msg string) bool
	Equal(expected, actual interface{}, msg string) bool
}

// TestingSink reports assertions to a test runner
type TestingSink struct {
	t assert.TestingT
}

// NewTestingSink report assertions to t, usually a *testing.T
func NewTestingSink(t assert.TestingT) *TestingSink {
	return &TestingSink{t: t}
}

func (s *TestingSink) True(condition bool, msg string) bool {
	if h, ok := s.t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.True(s.t, condition, msg)
}

func (s *TestingSink) Equal(expected, actual interface{}, msg string) bool {
	if h, ok := s.t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.Equal(s.t, expected, actual, msg)
}

// AssertionError failed assertion raised by StrictSink
type AssertionError struct {
	Message  string
	Expected interface{}
	Actual   interface{}
}

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Expected == nil && e.Actual == nil {
		return "failed asserting that false is true"
	}
	return fmt.Sprintf("failed asserting that %#v equals %#v", e.Actual, e.Expected)
}

// StrictSink panics with *AssertionError on the first failed assertion
type StrictSink struct{}

func (StrictSink) True(condition bool, msg string) bool {
	if !condition {
		panic(&AssertionError{Message: msg})
	}
	return true
}

func (StrictSink) Equal(expected, actual interface{}, msg string) bool {
	if !assert.ObjectsAreEqual(expected, actual) {
		panic(&AssertionError{Message: msg, Expected: expected, Actual: actual})
	}
	return true
}

// Assertion recorded by RecordingSink
type Assertion struct {
	Passed   bool
	Message  string
	Expected interface{}
	Actual   interface{}
}

// RecordingSink keeps every assertion
type RecordingSink struct {
	Assertions []Assertion
}

func (s *RecordingSink) True(condition bool, msg string) bool {
	s.Assertions = append(s.Assertions, Assertion{Passed: condition, Message: msg})
	return condition
}

func (s *RecordingSink) Equal(expected, actual interface{}, msg string) bool {
	passed := assert.ObjectsAreEqual(expected, actual)
	s.Assertions = append(s.Assertions, Assertion{Passed: passed, Message: msg, Expected: expected, Actual: actual})
	return passed
}

// Failures failed assertions, in order
func (s *RecordingSink) Failures() []Assertion {
	return s.filter(false)
}

// Passes passed assertions, in order
func (s *RecordingSink) Passes() []Assertion {
	return s.filter(true)
}

// Messages messages of failed assertions
func (s *RecordingSink) Messages() []string {
	var messages []string
	for _, a := range s.Failures() {
		messages = append(messages, a.Message)
	}
	return messages
}

func (s *RecordingSink) filter(passed bool) []Assertion {
	var result []Assertion
	for _, a := range s.Assertions {
		if a.Passed == passed {
			result = append(result, a)
		}
	}
	return result
}
