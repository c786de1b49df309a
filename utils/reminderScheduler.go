package utils

import (
	"context"
	"log"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReminderScheduler runs the daily assignment due-date reminder
// job and, when the cache runs on the in-memory backend, a periodic
// sweep of expired entries.
func StartReminderScheduler(db *gorm.DB, assignments *services.AssignmentService, memory *cache.MemoryBackend) *cron.Cron {
	scheduler := cron.New()

	// Every day at 08:00 server time
	if _, err := scheduler.AddFunc("0 8 * * *", func() {
		sendDueReminders(db, assignments)
	}); err != nil {
		logScheduler("Failed to register reminder job: " + err.Error())
	}

	if memory != nil {
		if _, err := scheduler.AddFunc("@every 10m", memory.Sweep); err != nil {
			logScheduler("Failed to register cache sweep job: " + err.Error())
		}
	}

	scheduler.Start()
	logScheduler("Scheduler started")
	return scheduler
}

func sendDueReminders(db *gorm.DB, assignments *services.AssignmentService) {
	logScheduler("Checking for assignments due within 48h...")

	ctx := context.Background()
	due, err := assignments.DueSoon(ctx, 48*time.Hour)
	if err != nil {
		logScheduler("Failed to load due assignments: " + err.Error())
		return
	}

	sent := 0
	for _, assignment := range due {
		if assignment.UserID == nil || assignment.DueDate == nil {
			continue
		}

		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", *assignment.UserID, false).First(&student).Error; err != nil {
			continue
		}

		body := AssignmentReminderBody(student.Name, assignment.Title, assignment.DueDate.Format("02 Jan 2006"))
		if err := SendEmail([]string{student.Email}, "Assignment due soon", body); err != nil {
			logScheduler("Failed to email " + student.Email + ": " + err.Error())
			continue
		}
		sent++
	}

	log.Printf("[REMINDER-SCHEDULER] %d of %d reminders sent", sent, len(due))
}
