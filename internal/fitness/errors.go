package fitness

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrClassFull       = errors.New("class is at capacity")
	ErrAlreadyEnrolled = errors.New("member already enrolled in class")
	ErrNotEnrolled     = errors.New("member not enrolled in class")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrNoJournal       = errors.New("registry has no journal")
)
