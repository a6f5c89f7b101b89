package services

import (
	"fmt"

	"alfredoptarigan/resume-mocker/internal/models"
)

// Allowed attempt transitions. Failed is reachable from every working
// state; both terminal states lead back to Idle.
var attemptTransitions = map[models.AttemptState][]models.AttemptState{
	models.StateIdle:       {models.StateEncoding},
	models.StateEncoding:   {models.StateRequesting, models.StateFailed},
	models.StateRequesting: {models.StateValidating, models.StateFailed},
	models.StateValidating: {models.StateSucceeded, models.StateFailed},
	models.StateSucceeded:  {models.StateIdle},
	models.StateFailed:     {models.StateIdle},
}

func CanTransition(from, to models.AttemptState) bool {
	for _, next := range attemptTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns the next state or an error if the move is not allowed.
func Transition(from, to models.AttemptState) (models.AttemptState, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid attempt transition %s -> %s", from, to)
	}
	return to, nil
}
