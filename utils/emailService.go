package utils

import (
	"fmt"
	"log"

	"learnhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Generic Send Email
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A4D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A4D; line-height: 1.6; }
			.content h2 { color: #1A1A4D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #FF7A30; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FF7A30; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// Application decision (approved / rejected)
func SendApplicationDecisionEmail(email, name string, approved bool) {
	if approved {
		subject := "You're in! Welcome to the LearnHub Ambassador Program"
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Congratulations! Your ambassador application has been <strong>approved</strong>.</p>
			<p>Head to your dashboard to generate your referral link and start earning commissions on every enrollment you refer.</p>
			<a href="%s/ambassador/dashboard" class="btn">Open Dashboard</a>
		`, name, config.AppConfig.ReferralBaseUrl)
		go SendEmail(email, name, subject, getEmailTemplate("Application Approved", body))
		return
	}

	subject := "Update on your LearnHub Ambassador application"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for applying to the LearnHub Ambassador Program. After review, we are unable to accept your application at this time.</p>
		<p>You are welcome to apply again with updated details.</p>
	`, name)
	go SendEmail(email, name, subject, getEmailTemplate("Application Update", body))
}

// Referral attributed to an ambassador
func SendAttributionEmail(email, name, courseName string, amount float64) {
	subject := "You just referred a new enrollment!"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Someone enrolled in <strong>%s</strong> using your referral link.</p>
		<div class="info-box">
			Enrollment amount: <strong>₹%.2f</strong>. Your commission is computed at your current tier rate — check the dashboard for updated earnings.
		</div>
	`, name, courseName, amount)
	go SendEmail(email, name, subject, getEmailTemplate("New Referral Enrollment", body))
}

// Monthly performance summary
func SendMonthlySummaryEmail(email, name string, enrollments int64, earnings float64, tierName string) {
	subject := "Your LearnHub Ambassador monthly summary"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Here is your ambassador summary for last month:</p>
		<div class="info-box">
			<strong>Referred enrollments:</strong> %d<br>
			<strong>Estimated earnings:</strong> ₹%.2f<br>
			<strong>Current tier:</strong> %s
		</div>
		<p>Keep sharing your link to climb to the next tier.</p>
	`, name, enrollments, earnings, tierName)
	go SendEmail(email, name, subject, getEmailTemplate("Monthly Summary", body))
}
