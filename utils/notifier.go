package utils

import (
	"log"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/go-resty/resty/v2"
)

// ReviewWebhook posts review events to the external notification
// service. Fire-and-forget: delivery runs off the request path and a
// failed post is only logged.
type ReviewWebhook struct {
	client *resty.Client
	url    string
}

// NewReviewWebhook returns a webhook notifier, or nil when no URL is
// configured.
func NewReviewWebhook(url string) *ReviewWebhook {
	if url == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)
	return &ReviewWebhook{client: client, url: url}
}

// AssignmentReviewed notifies the external service that a review landed.
func (w *ReviewWebhook) AssignmentReviewed(assignment *models.Assignment) {
	go func() {
		payload := map[string]interface{}{
			"event":         "assignment.reviewed",
			"assignment_id": assignment.ID,
			"course_id":     assignment.CourseID,
			"user_id":       assignment.UserID,
			"reviewed_by":   assignment.ReviewedBy,
			"reviewed_at":   assignment.ReviewedAt,
		}

		resp, err := w.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(w.url)
		if err != nil {
			log.Printf("Review webhook failed: %v", err)
			return
		}
		if resp.IsError() {
			log.Printf("Review webhook returned %s", resp.Status())
		}
	}()
}
