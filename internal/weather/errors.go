package weather

import (
	"errors"
	"fmt"
	"time"
)

// FailureReason classifies why a fetch produced no update.
type FailureReason string

const (
	ReasonNetwork     FailureReason = "network"
	ReasonUpstream    FailureReason = "upstream"
	ReasonMalformed   FailureReason = "malformed"
	ReasonEmpty       FailureReason = "empty"
	ReasonUnavailable FailureReason = "unavailable"
)

// FetchError is returned by providers for every failed request.
type FetchError struct {
	Op     string
	Reason FailureReason
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err with an operation name and reason.
func NewFetchError(op string, reason FailureReason, err error) *FetchError {
	return &FetchError{Op: op, Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason from err, defaulting to network.
func ReasonOf(err error) FailureReason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ReasonNetwork
}

// Result carries either a value or the failure that prevented it.
type Result[T any] struct {
	Value     T
	Err       error
	FetchedAt time.Time
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Reason returns "" for successful results.
func (r Result[T]) Reason() FailureReason {
	if r.Err == nil {
		return ""
	}
	return ReasonOf(r.Err)
}

// Failure describes the most recent fetch that did not update the dashboard.
type Failure struct {
	Op      string        `json:"op"`
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
	At      time.Time     `json:"at"`
}

// FailureFrom builds a Failure from a failed result's error.
func FailureFrom(op string, err error, at time.Time) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{
		Op:      op,
		Reason:  ReasonOf(err),
		Message: err.Error(),
		At:      at,
	}
}
