package utils

import (
	"crypto/rand"
	"fmt"
	"net/smtp"

	"github.com/Drona-Balasara/ALUMNET/config"
)

// GenerateOTP generates a numeric OTP of n digits (cryptographically random)
func GenerateOTP(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%0*d", n, 0)
	}
	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (bytes[i] % 10)
	}
	return string(otp)
}

// SendMail sends a plain-text email over SMTP using the configured server.
func SendMail(to, subject, body string) error {
	cfg := config.App
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	from := cfg.SMTPUser

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
