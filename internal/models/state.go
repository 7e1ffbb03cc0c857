package models

import "fmt"

// Status is the tag of a session State.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the profile/repository pair resident after a successful lookup.
type Result struct {
	Profile      Profile      `json:"profile"`
	Repositories []Repository `json:"repositories"`
}

// State is the lookup state machine. Build it with Idle, Loading, Succeeded
// or Failed; Result is only set for success and Err only for error.
type State struct {
	Status Status  `json:"status"`
	Result *Result `json:"result,omitempty"`
	Err    string  `json:"error,omitempty"`
}

func Idle() State { return State{Status: StatusIdle} }

func Loading() State { return State{Status: StatusLoading} }

func Succeeded(r Result) State {
	return State{Status: StatusSuccess, Result: &r}
}

func Failed(message string) State {
	return State{Status: StatusError, Err: message}
}

// Repositories returns the resident repository list, empty unless succeeded.
func (s State) Repositories() []Repository {
	if s.Result == nil {
		return []Repository{}
	}
	return s.Result.Repositories
}

// Profile returns the resident profile, nil unless succeeded.
func (s State) Profile() *Profile {
	if s.Result == nil {
		return nil
	}
	return &s.Result.Profile
}

func (s State) String() string {
	switch s.Status {
	case StatusSuccess:
		return fmt.Sprintf("success(%s, %d repos)", s.Result.Profile.Username, len(s.Result.Repositories))
	case StatusError:
		return fmt.Sprintf("error(%s)", s.Err)
	default:
		return string(s.Status)
	}
}
