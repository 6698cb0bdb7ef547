package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid. Errors are logged, not
// surfaced, since email is fire-and-forget for every caller.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email skipped (no SendGrid key): %s -> %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Lumina Learning", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
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
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.content h2 { color: #1A1A40; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6C63FF; margin: 20px 0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #6C63FF; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LUMINA LEARNING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Lumina Learning. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendOTPEmail delivers the verification code after signup or on resend.
func SendOTPEmail(email, name, otp string) {
	subject := "Your Verification Code"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your One Time Password (OTP) is:</p>
		<h1 style="text-align: center; color: #6C63FF; font-size: 40px; margin: 20px 0;">%s</h1>
		<p>The code expires in 10 minutes. Do not share it with anyone.</p>
	`, name, otp)

	go SendEmail(email, name, subject, getEmailTemplate("Email Verification", body))
}

// SendWelcomeEmail goes out after the email is verified.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Lumina Learning"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Lumina Learning</strong>! Your account is ready.</p>
		<p>Browse the catalog, enroll in a course and start learning today.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendInvoiceEmail confirms a completed purchase and lists the courses bought.
func SendInvoiceEmail(email, name, txnID string, courseTitles []string, total float64) {
	subject := "Purchase Confirmation - " + txnID
	items := ""
	for _, title := range courseTitles {
		items += fmt.Sprintf(`<li style="margin-bottom: 8px;">%s</li>`, title)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your purchase. You are now enrolled in:</p>
		<ul>%s</ul>
		<div class="info-box">
			<strong>Transaction:</strong> %s<br>
			<strong>Amount Paid:</strong> %.2f
		</div>
		<p>All courses are available in your dashboard right away.</p>
	`, name, items, txnID, total)

	go SendEmail(email, name, subject, getEmailTemplate("Purchase Confirmed", body))
}

// SendCertificateEmail notifies the user their certificate was issued.
func SendCertificateEmail(email, name, courseTitle, certificateNumber string) {
	subject := "Course Completion Certificate"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box" style="text-align: center;">
			<p style="margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="margin: 0;">%s</h2>
		</div>
		<p>Anyone can verify this certificate using the number above.</p>
	`, name, courseTitle, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Certificate Issued", body))
}

// SendWithdrawalProcessedEmail reports an admin decision on a payout request.
func SendWithdrawalProcessedEmail(email, name string, amount float64, approved bool, note string) {
	subject := "Withdrawal Request Update"
	outcome := "approved and is on its way to your payment method"
	if !approved {
		outcome = "rejected and the amount has been returned to your wallet"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your withdrawal request of <strong>%.2f</strong> has been %s.</p>
	`, name, amount, outcome)
	if note != "" {
		body += fmt.Sprintf(`<div class="info-box"><strong>Note:</strong> %s</div>`, note)
	}

	go SendEmail(email, name, subject, getEmailTemplate("Withdrawal Processed", body))
}

// SendTicketReplyEmail tells the ticket owner support has responded.
func SendTicketReplyEmail(email, name, subjectLine string, ticketID uint) {
	subject := fmt.Sprintf("New Reply on Ticket #%d", ticketID)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Our support team replied to your ticket <strong>%s</strong>.</p>
		<p>Login to your dashboard to read the response.</p>
	`, name, subjectLine)

	go SendEmail(email, name, subject, getEmailTemplate("Support Update", body))
}

// SendLoginNotificationEmail alerts the user about a new login.
func SendLoginNotificationEmail(email, name, ip, device string, at time.Time) {
	subject := "New Login Alert"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We noticed a new login to your account.</p>
		<div class="info-box">
			<strong>Time:</strong> %s<br>
			<strong>IP Address:</strong> %s<br>
			<strong>Device:</strong> %s
		</div>
		<p>If this was not you, please change your password immediately.</p>
	`, name, at.Format("02 Jan 2006 15:04:05"), ip, device)

	go SendEmail(email, name, subject, getEmailTemplate("New Login Detected", body))
}
