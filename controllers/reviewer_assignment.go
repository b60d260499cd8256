// controllers/reviewer_assignment.go - Reviewer assignment endpoints

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"research-approval-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== REVIEWER ASSIGNMENT =====================

// AssignReviewersRequest accepts reviewer ids as integers or numeric strings,
// matching the legacy admin form payload.
type AssignReviewersRequest struct {
	Reviewers []interface{} `json:"reviewers" binding:"required"`
}

// LegacyAssignRequest is the original AJAX body shape with the submission id
// in the body instead of the path.
type LegacyAssignRequest struct {
	SubmissionID interface{}   `json:"submission_id" binding:"required"`
	Reviewers    []interface{} `json:"reviewers" binding:"required"`
}

// LegacyRemoveRequest is the original AJAX body shape for reviewer removal.
type LegacyRemoveRequest struct {
	SubmissionID interface{} `json:"submission_id" binding:"required"`
	UserID       interface{} `json:"user_id" binding:"required"`
}

func coerceID(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func coerceReviewerIDs(raw []interface{}) []int {
	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		if id := coerceID(v); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// respondAssignmentError maps service error kinds onto the uniform
// {success:false, message} body the admin frontend expects.
func respondAssignmentError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var quotaErr *services.QuotaError
	switch {
	case errors.Is(err, services.ErrInvalidSubmissionID),
		errors.Is(err, services.ErrInvalidUserID),
		errors.Is(err, services.ErrReviewerListEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		status = http.StatusNotFound
	case errors.As(err, &quotaErr):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
	})
}

func assignReviewers(c *gin.Context, submissionID int, reviewerIDs []int) {
	result, err := services.NewReviewerService(nil).AssignReviewers(submissionID, reviewerIDs)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	// Best-effort email fan-out after commit. Never fails the request.
	go func(added []services.AssignedReviewer, title string) {
		for _, r := range added {
			if r.Email == "" {
				continue
			}
			subject := "New Review Assignment"
			body := buildFormalEmailHTML(subject, r.DisplayName,
				"You have been assigned as a reviewer for the title \""+title+"\". Please sign in to review the submission.")
			sendMailSafe([]string{r.Email}, subject, body)
		}
	}(result.Added, result.SubmissionTitle)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         strconv.Itoa(result.AddedCount) + " reviewer(s) assigned successfully",
		"total_reviewers": result.TotalReviewers,
	})
}

func removeReviewer(c *gin.Context, submissionID, userID int) {
	result, err := services.NewReviewerService(nil).RemoveReviewer(submissionID, userID)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	go func(email, name, title string) {
		if email == "" {
			return
		}
		subject := "Review Assignment Removed"
		body := buildFormalEmailHTML(subject, name,
			"You have been removed as a reviewer from the title \""+title+"\".")
		sendMailSafe([]string{email}, subject, body)
	}(result.RemovedEmail, result.RemovedName, result.SubmissionTitle)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Reviewer removed successfully",
		"remaining_count": result.RemainingCount,
		"group_id":        result.GroupID,
	})
}

// AssignReviewers adds reviewers to a submission (admin only).
// POST /api/v1/submissions/:id/reviewers
func AssignReviewers(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid submission ID is required"})
		return
	}

	var req AssignReviewersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one reviewer is required"})
		return
	}

	reviewerIDs := coerceReviewerIDs(req.Reviewers)
	if len(reviewerIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one reviewer is required"})
		return
	}

	assignReviewers(c, submissionID, reviewerIDs)
}

// AssignReviewersLegacy serves the original admin AJAX contract.
// POST /api/v1/assign-reviewers
func AssignReviewersLegacy(c *gin.Context) {
	var req LegacyAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Submission ID and reviewers are required"})
		return
	}

	submissionID := coerceID(req.SubmissionID)
	if submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid submission ID is required"})
		return
	}

	reviewerIDs := coerceReviewerIDs(req.Reviewers)
	if len(reviewerIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one reviewer is required"})
		return
	}

	assignReviewers(c, submissionID, reviewerIDs)
}

// RemoveReviewer deactivates one reviewer assignment (admin only).
// DELETE /api/v1/submissions/:id/reviewers/:user_id
func RemoveReviewer(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid submission ID is required"})
		return
	}
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid user ID is required"})
		return
	}

	removeReviewer(c, submissionID, userID)
}

// RemoveReviewerLegacy serves the original admin AJAX contract.
// POST /api/v1/remove-reviewer
func RemoveReviewerLegacy(c *gin.Context) {
	var req LegacyRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Submission ID and user ID are required"})
		return
	}

	submissionID := coerceID(req.SubmissionID)
	if submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid submission ID is required"})
		return
	}
	userID := coerceID(req.UserID)
	if userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid user ID is required"})
		return
	}

	removeReviewer(c, submissionID, userID)
}

// GetSubmissionReviewers returns the active reviewer panel for a submission.
// GET /api/v1/submissions/:id/reviewers
func GetSubmissionReviewers(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid submission ID is required"})
		return
	}

	reviewers, err := services.NewReviewerService(nil).GetActiveReviewers(submissionID)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reviewers": reviewers,
		"total":     len(reviewers),
	})
}
