package mailer

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendContactMessage(name, email, message string) error
	SendWellnessAlert(sessionId string, metrics map[string]float64, elevated []string) error
}

type emailService struct {
	send         func(m *gomail.Message) error
	senderEmail  string
	senderName   string
	supportInbox string
}

func NewEmailService(host string, port int, username, password, senderName, supportInbox string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	if supportInbox == "" {
		supportInbox = username
	}
	return &emailService{
		send: func(m *gomail.Message) error {
			return d.DialAndSend(m)
		},
		senderEmail:  username,
		senderName:   senderName,
		supportInbox: supportInbox,
	}
}

func (s *emailService) newMessage(subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.supportInbox)
	m.SetHeader("Subject", subject)
	return m
}

// SendContactMessage forwards a contact form submission to the support inbox.
func (s *emailService) SendContactMessage(name, email, message string) error {
	m := s.newMessage("New contact message from " + name)
	m.SetHeader("Reply-To", email)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New message via Mindly</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p style="white-space: pre-wrap;">%s</p>
		</div>
	`, html.EscapeString(name), html.EscapeString(email), html.EscapeString(message))
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

// SendWellnessAlert notifies support that a session crossed the distress threshold.
func (s *emailService) SendWellnessAlert(sessionId string, metrics map[string]float64, elevated []string) error {
	m := s.newMessage("Wellness alert for session " + sessionId)

	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&rows, "<li>%s: %.1f</li>", html.EscapeString(k), metrics[k])
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Elevated distress detected</h2>
			<p>Session <strong>%s</strong> reported high: %s</p>
			<ul>%s</ul>
		</div>
	`, html.EscapeString(sessionId), html.EscapeString(strings.Join(elevated, ", ")), rows.String())
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("send wellness alert: %w", err)
	}
	return nil
}
