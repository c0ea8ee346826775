package utils

import (
	"fmt"
	"keciapp/config"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("Skipping email to %s (no SENDGRID_API_KEY): %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("KeciApp", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #2F5D50; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2933; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; font-size: 12px; color: #9AA5B1; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message from KeciApp.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to KeciApp! Your daily affirmation is already waiting for you,
		and the first episode of every series unlocks as soon as you start listening.</p>
		<p>Take a breath. We're glad you're here.</p>`, name)

	if err := SendEmail(email, name, "Welcome to KeciApp", getEmailTemplate("Welcome", body)); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}
}

// SendQuestionAnsweredEmail notifies a user that staff replied to their question.
func SendQuestionAnsweredEmail(email, name, subject, referenceCode string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Our team has answered your question <strong>%s</strong> (ref %s).</p>
		<p>Open the app and head to your questions to read the reply.</p>`, name, subject, referenceCode)

	if err := SendEmail(email, name, "Your question has been answered", getEmailTemplate("Question Answered", body)); err != nil {
		log.Printf("Failed to send answer notification to %s: %v", email, err)
	}
}

// SendSubscriptionExpiryReminder warns a user before their subscription lapses.
func SendSubscriptionExpiryReminder(email, name string, expiresAt *time.Time) {
	expiryStr := "soon"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your KeciApp subscription is expiring on <strong>%s</strong>.</p>
		<p>Renew before then to keep your series progress and daily content flowing.</p>`, name, expiryStr)

	if err := SendEmail(email, name, "Your KeciApp subscription is expiring soon", getEmailTemplate("Subscription Expiring", body)); err != nil {
		log.Printf("Failed to send expiry reminder to %s: %v", email, err)
	}
}

// SendSubscriptionExpiredEmail tells a user their subscription has lapsed.
func SendSubscriptionExpiredEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your KeciApp subscription has expired.</p>
		<p>Your progress is saved. Renew any time to pick up right where you left off.</p>`, name)

	if err := SendEmail(email, name, "Your KeciApp subscription has expired", getEmailTemplate("Subscription Expired", body)); err != nil {
		log.Printf("Failed to send expiry notification to %s: %v", email, err)
	}
}
