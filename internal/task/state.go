package task

import "fmt"

// NotificationState is one state of the notification run.
type NotificationState string

const (
	StateFiltering        NotificationState = "FILTERING"
	StateNoMatch          NotificationState = "NO_MATCH"
	StateGenerating       NotificationState = "GENERATING"
	StateDelivered        NotificationState = "DELIVERED"
	StateGenerationFailed NotificationState = "GENERATION_FAILED"
)

// notificationTransitions lists the legal moves of the run. NO_MATCH,
// DELIVERED, and GENERATION_FAILED are terminal.
var notificationTransitions = map[NotificationState][]NotificationState{
	StateFiltering:  {StateNoMatch, StateGenerating},
	StateGenerating: {StateDelivered, StateGenerationFailed},
}

// IsTerminal reports whether the state ends the run.
func (s NotificationState) IsTerminal() bool {
	return len(notificationTransitions[s]) == 0
}

// Transition moves to the next state, rejecting moves the run does not
// allow.
func (s NotificationState) Transition(next NotificationState) (NotificationState, error) {
	for _, allowed := range notificationTransitions[s] {
		if next == allowed {
			return next, nil
		}
	}
	return s, fmt.Errorf("illegal notification transition %s -> %s", s, next)
}
