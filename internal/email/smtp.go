package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail through a gomail dialer.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	htmlBody, err := render(verificationTmpl, templateData{
		ActionURL: fmt.Sprintf("%s/verify?token=%s", p.config.BaseURL, token),
	})
	if err != nil {
		return err
	}
	return p.send(to, "Confirm your email", htmlBody)
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	htmlBody, err := render(passwordResetTmpl, templateData{
		ActionURL: fmt.Sprintf("%s/reset-password?token=%s", p.config.BaseURL, token),
	})
	if err != nil {
		return err
	}
	return p.send(to, "Reset your password", htmlBody)
}

func (p *SMTPProvider) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.From, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
