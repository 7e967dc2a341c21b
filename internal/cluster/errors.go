package cluster

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the kind of every error raised while building a
// scheduler from bad input. A session cannot start after one.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrStateInconsistency is the kind of every error caused by a broken
// partition or by an item the scheduler does not know about.
var ErrStateInconsistency = errors.New("state inconsistency")

// ConfigError reports a rejected construction parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// InconsistencyError reports an item that violates the cluster partition.
type InconsistencyError struct {
	ItemIndex int
	Reason    string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("state inconsistency: item %d: %s", e.ItemIndex, e.Reason)
}

func (e *InconsistencyError) Unwrap() error { return ErrStateInconsistency }

// RoundOverrunError reports an answer count that jumped past more than one
// round boundary between two calls.
type RoundOverrunError struct {
	ItemIndex int
	TimesSeen int
	Threshold int
}

func (e *RoundOverrunError) Error() string {
	return fmt.Sprintf("state inconsistency: item %d seen %d times, past round threshold %d",
		e.ItemIndex, e.TimesSeen, e.Threshold)
}

func (e *RoundOverrunError) Unwrap() error { return ErrStateInconsistency }
