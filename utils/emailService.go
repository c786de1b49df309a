package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/wahid1099/CourseMaster-Backend/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CourseMaster <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// AssignmentReminderBody renders the due-date reminder email
func AssignmentReminderBody(studentName, assignmentTitle, dueDate string) string {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your assignment <b>%s</b> is due on %s. Please submit it before the deadline.</p>",
		studentName, assignmentTitle, dueDate,
	)
	return getEmailTemplate("Assignment due soon", body)
}

// getEmailTemplate wraps body content in the standard mail layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 8px;">
  <div style="background: #1a2b4c; color: #ffffff; padding: 16px 24px; border-radius: 8px 8px 0 0;">
    <h2 style="margin: 0;">%s</h2>
  </div>
  <div style="padding: 24px; color: #333333;">
    %s
    <p style="margin-top: 32px; color: #888888; font-size: 12px;">This is an automated message from CourseMaster.</p>
  </div>
</div>`, title, bodyContent)
}
