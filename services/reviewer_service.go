// services/reviewer_service.go - Reviewer assignment core (quota invariant + notification fan-out)

package services

import (
	"errors"
	"fmt"
	"time"

	"research-approval-api/config"
	"research-approval-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinReviewers is the floor for active reviewer assignments on a submission.
// Add-time uses an admission check (current + proposed >= MinReviewers),
// remove-time uses a strict floor (current > MinReviewers). The two thresholds
// are intentionally asymmetric; do not unify them without product sign-off.
const MinReviewers = 3

type ReviewerService struct {
	db *gorm.DB
}

func NewReviewerService(db *gorm.DB) *ReviewerService {
	if db == nil {
		db = config.DB
	}
	return &ReviewerService{db: db}
}

// AssignedReviewer describes one reviewer added by AssignReviewers, for the
// response payload and the post-commit email side effect.
type AssignedReviewer struct {
	UserID      int    `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

type AssignReviewersResult struct {
	AddedCount      int
	TotalReviewers  int
	SubmissionTitle string
	Added           []AssignedReviewer
}

type RemoveReviewerResult struct {
	RemainingCount  int
	GroupID         int
	SubmissionTitle string
	RemovedEmail    string
	RemovedName     string
}

// submissionLead is the query-only projection of a submission joined to its
// research group's lead student.
type submissionLead struct {
	SubmissionID  int
	GroupID       int
	Title         string
	LeadStudentID *int
}

// AssignReviewers adds reviewer assignments to a submission.
//
// The whole operation runs in one transaction. The submission row is locked
// FOR UPDATE first so that the count-then-insert sequence is serialized
// against concurrent assignment mutations on the same submission.
//
// Candidates already actively assigned are skipped without error, as are user
// IDs that do not resolve to a live user. The admission check compares the
// proposed total (current + all candidates) against the floor before any
// per-reviewer work, so duplicate skips are not re-validated.
func (s *ReviewerService) AssignReviewers(submissionID int, reviewerUserIDs []int) (*AssignReviewersResult, error) {
	if submissionID <= 0 {
		return nil, ErrInvalidSubmissionID
	}
	if len(reviewerUserIDs) == 0 {
		return nil, ErrReviewerListEmpty
	}

	var result *AssignReviewersResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sub, err := s.lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return ErrSubmissionNotFound
		}

		currentCount, err := s.countActiveReviewers(tx, submissionID)
		if err != nil {
			return err
		}

		if currentCount+len(reviewerUserIDs) < MinReviewers {
			return &QuotaError{
				Current: currentCount,
				Message: fmt.Sprintf("Total reviewers must be at least %d. Currently assigned: %d", MinReviewers, currentCount),
			}
		}

		added := make([]AssignedReviewer, 0, len(reviewerUserIDs))
		now := time.Now()

		for _, reviewerID := range reviewerUserIDs {
			exists, err := s.hasActiveAssignment(tx, submissionID, reviewerID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			var user models.User
			if err := tx.Select("user_id, email, prefix, user_fname, user_lname, role").
				Where("user_id = ? AND delete_at IS NULL", reviewerID).
				Take(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			assignment := models.Assignment{
				AssignmentType: models.AssignmentTypeReviewer,
				ContextType:    models.ContextTypeSubmission,
				ContextID:      submissionID,
				UserID:         reviewerID,
				Role:           user.Role,
				IsActive:       true,
				AssignedDate:   now,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}

			if err := createNotification(tx, reviewerID,
				"New Review Assignment",
				fmt.Sprintf("You have been assigned as a reviewer for the title \"%s\".", sub.Title),
				models.NotifTitleAssignment,
				models.ContextTypeSubmission, submissionID,
			); err != nil {
				return err
			}

			added = append(added, AssignedReviewer{
				UserID:      reviewerID,
				Email:       user.Email,
				Role:        user.Role,
				DisplayName: user.DisplayName(),
			})
		}

		if len(added) > 0 && sub.LeadStudentID != nil {
			message := fmt.Sprintf("Reviewers have been assigned to your title \"%s\".", sub.Title)
			if currentCount > 0 {
				message = fmt.Sprintf("Additional reviewers have been assigned to your title \"%s\". Existing approvals remain valid.", sub.Title)
			}
			if err := createNotification(tx, *sub.LeadStudentID,
				"Reviewers Assigned",
				message,
				models.NotifReviewerAssigned,
				models.ContextTypeSubmission, submissionID,
			); err != nil {
				return err
			}
		}

		result = &AssignReviewersResult{
			AddedCount:      len(added),
			TotalReviewers:  currentCount + len(added),
			SubmissionTitle: sub.Title,
			Added:           added,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveReviewer deactivates one reviewer assignment on a submission.
//
// The quota check runs before the assignment lookup: with MinReviewers or
// fewer active reviewers the call fails with a QuotaError regardless of
// whether the target assignment exists. The submission/group lookup for the
// lead-student notification is best-effort and never aborts the removal.
func (s *ReviewerService) RemoveReviewer(submissionID, userID int) (*RemoveReviewerResult, error) {
	if submissionID <= 0 {
		return nil, ErrInvalidSubmissionID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	var result *RemoveReviewerResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock first so the count below cannot race a concurrent removal.
		sub, err := s.lockSubmission(tx, submissionID)
		if err != nil {
			return err
		}

		currentCount, err := s.countActiveReviewers(tx, submissionID)
		if err != nil {
			return err
		}

		if currentCount <= MinReviewers {
			return &QuotaError{
				Current: currentCount,
				Message: fmt.Sprintf("Cannot remove reviewer. Minimum %d reviewers required.", MinReviewers),
			}
		}

		res := tx.Model(&models.Assignment{}).
			Where("context_type = ? AND assignment_type = ? AND context_id = ? AND user_id = ? AND is_active = 1",
				models.ContextTypeSubmission, models.AssignmentTypeReviewer, submissionID, userID).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAssignmentNotFound
		}

		title := ""
		groupID := 0
		var leadStudentID *int
		if sub != nil {
			title = sub.Title
			groupID = sub.GroupID
			leadStudentID = sub.LeadStudentID
		}

		if err := createNotification(tx, userID,
			"Review Assignment Removed",
			fmt.Sprintf("You have been removed as a reviewer from the title \"%s\".", title),
			models.NotifReviewerRemoved,
			models.ContextTypeSubmission, submissionID,
		); err != nil {
			return err
		}

		if leadStudentID != nil {
			if err := createNotification(tx, *leadStudentID,
				"Reviewer Panel Updated",
				fmt.Sprintf("The reviewer panel for your title \"%s\" has been updated.", title),
				models.NotifReviewerUpdated,
				models.ContextTypeSubmission, submissionID,
			); err != nil {
				return err
			}
		}

		removedEmail := ""
		removedName := ""
		var removed models.User
		if err := tx.Select("user_id, email, prefix, user_fname, user_lname").
			Where("user_id = ?", userID).
			Take(&removed).Error; err == nil {
			removedEmail = removed.Email
			removedName = removed.DisplayName()
		}

		result = &RemoveReviewerResult{
			RemainingCount:  currentCount - 1,
			GroupID:         groupID,
			SubmissionTitle: title,
			RemovedEmail:    removedEmail,
			RemovedName:     removedName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetActiveReviewers lists the active reviewer assignments for a submission.
func (s *ReviewerService) GetActiveReviewers(submissionID int) ([]models.Assignment, error) {
	if submissionID <= 0 {
		return nil, ErrInvalidSubmissionID
	}

	var assignments []models.Assignment
	if err := s.db.Preload("User").
		Where("context_type = ? AND assignment_type = ? AND context_id = ? AND is_active = 1",
			models.ContextTypeSubmission, models.AssignmentTypeReviewer, submissionID).
		Order("assigned_date ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// lockSubmission loads the submission joined to its group's lead student,
// taking a FOR UPDATE lock on the submission row. Returns (nil, nil) when the
// submission or its group row is missing.
func (s *ReviewerService) lockSubmission(tx *gorm.DB, submissionID int) (*submissionLead, error) {
	var sub models.Submission
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("submission_id, group_id, title").
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		Take(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var group models.ResearchGroup
	if err := tx.Select("group_id, lead_student_id").
		Where("group_id = ?", sub.GroupID).
		Take(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &submissionLead{
		SubmissionID:  sub.SubmissionID,
		GroupID:       sub.GroupID,
		Title:         sub.Title,
		LeadStudentID: group.LeadStudentID,
	}, nil
}

func (s *ReviewerService) countActiveReviewers(tx *gorm.DB, submissionID int) (int, error) {
	var n int64
	err := tx.Model(&models.Assignment{}).
		Where("context_type = ? AND assignment_type = ? AND context_id = ? AND is_active = 1",
			models.ContextTypeSubmission, models.AssignmentTypeReviewer, submissionID).
		Count(&n).Error
	return int(n), err
}

func (s *ReviewerService) hasActiveAssignment(tx *gorm.DB, submissionID, userID int) (bool, error) {
	var assignment models.Assignment
	err := tx.Select("assignment_id").
		Where("context_type = ? AND assignment_type = ? AND context_id = ? AND user_id = ? AND is_active = 1",
			models.ContextTypeSubmission, models.AssignmentTypeReviewer, submissionID, userID).
		Take(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func createNotification(tx *gorm.DB, userID int, title, message string, notifType models.NotificationType, contextType string, contextID int) error {
	n := models.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        notifType,
		ContextType: contextType,
		ContextID:   contextID,
		IsRead:      false,
		CreateAt:    time.Now(),
	}
	return tx.Create(&n).Error
}
