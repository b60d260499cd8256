package services

import "errors"

var (
	ErrInvalidSubmissionID = errors.New("Valid submission ID is required")
	ErrInvalidUserID       = errors.New("Valid user ID is required")
	ErrReviewerListEmpty   = errors.New("At least one reviewer is required")
	ErrSubmissionNotFound  = errors.New("Submission not found")
	ErrAssignmentNotFound  = errors.New("Reviewer assignment not found")
)

// QuotaError reports a violation of the minimum-reviewer floor.
type QuotaError struct {
	Current int
	Message string
}

func (e *QuotaError) Error() string { return e.Message }
