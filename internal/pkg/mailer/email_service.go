// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"

	"ai-docgen-be/pkg/store"
)

type IEmailService interface {
	SendRunReport(toEmail, repositoryName string, result *store.RunResult) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	dashboardURL string // used to construct links into the docs UI
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	dashboardURL := os.Getenv("DASHBOARD_URL")

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		dashboardURL: dashboardURL,
	}
}

func (s *emailService) SendRunReport(toEmail, repositoryName string, result *store.RunResult) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)

	subject := fmt.Sprintf("Documentation generated for %s", repositoryName)
	outcome := "completed"
	if !result.Success {
		subject = fmt.Sprintf("Documentation run failed for %s", repositoryName)
		outcome = "failed"
	}
	m.SetHeader("Subject", subject)

	sessionLink := fmt.Sprintf("%s/sessions/%s", s.dashboardURL, result.SessionID)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Documentation run %s</h2>
			<p>Repository: <strong>%s</strong></p>
			<ul>
				<li>Documents generated: %d of %d planned</li>
				<li>Cross-links created: %d</li>
				<li>Estimated cost: $%.4f</li>
			</ul>
			<p><a href="%s">View the session</a></p>
		</div>
	`, outcome, repositoryName,
		result.DocumentsGenerated, result.DocumentsPlanned,
		result.LinksCreated, result.EstimatedCost, sessionLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send run report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Run report sent to %s\n", toEmail)
	return nil
}
