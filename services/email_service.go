// File: /services/email_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"gopkg.in/gomail.v2"
	"xclub-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer

	// In-memory storage for verification codes
	verificationCodes map[string]VerificationCode
	mutex             sync.RWMutex
}

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	service := &EmailService{
		config:            cfg,
		dialer:            dialer,
		verificationCodes: make(map[string]VerificationCode),
	}

	// Start cleanup goroutine
	go service.cleanupExpiredCodes()

	return service
}

// Generate a random 4-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 4)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}

// Send verification email
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	// Check if there's already a valid unused code
	es.mutex.RLock()
	existingCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	var code string
	if exists && !existingCode.Used && time.Now().Before(existingCode.ExpiresAt) {
		// Reuse existing valid code
		code = existingCode.Code
	} else {
		code = es.generateVerificationCode()

		// Store verification code (expires in 10 minutes)
		es.mutex.Lock()
		es.verificationCodes[email] = VerificationCode{
			Code:      code,
			Email:     email,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Used:      false,
		}
		es.mutex.Unlock()
	}

	m := es.newMessage(email, "X-Club - Email Verification")
	m.SetBody("text/plain", fmt.Sprintf(`Hello %s!

Welcome to X-Club! Please verify your email address to complete your registration.

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't create an account with X-Club, please ignore this email.

The X-Club Team`, name, code))

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("📧 Verification email sent to %s\n", email)
	return code, nil
}

// Verify the code
func (es *EmailService) VerifyCode(email, inputCode string) bool {
	es.mutex.RLock()
	storedCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	if !exists || storedCode.Used {
		return false
	}

	if time.Now().After(storedCode.ExpiresAt) {
		es.mutex.Lock()
		delete(es.verificationCodes, email)
		es.mutex.Unlock()
		return false
	}

	if storedCode.Code != inputCode {
		return false
	}

	// Mark as used
	es.mutex.Lock()
	storedCode.Used = true
	es.verificationCodes[email] = storedCode
	es.mutex.Unlock()

	return true
}

// Get verification code for testing/debugging
func (es *EmailService) GetVerificationCode(email string) string {
	es.mutex.RLock()
	defer es.mutex.RUnlock()

	if code, exists := es.verificationCodes[email]; exists && !code.Used && time.Now().Before(code.ExpiresAt) {
		return code.Code
	}
	return ""
}

// Cleanup expired verification codes
func (es *EmailService) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		es.mutex.Lock()
		now := time.Now()
		for email, code := range es.verificationCodes {
			if now.After(code.ExpiresAt) || code.Used {
				delete(es.verificationCodes, email)
			}
		}
		es.mutex.Unlock()
	}
}

// SendWelcomeEmail greets a freshly verified account.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := es.newMessage(email, "Welcome to X-Club!")
	m.SetBody("text/plain", fmt.Sprintf(`Hello %s!

Your email is verified and your X-Club account is ready.

Join a club, pick a challenge and start logging your activities.

The X-Club Team`, name))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// SendChallengeInvitationEmail notifies a user they were invited to a
// challenge, including when the invitation expires.
func (es *EmailService) SendChallengeInvitationEmail(email, name, inviterName, challengeName string, expiresAt time.Time) error {
	m := es.newMessage(email, fmt.Sprintf("X-Club - %s invited you to a challenge", inviterName))
	m.SetBody("text/plain", fmt.Sprintf(`Hello %s!

%s invited you to join the challenge "%s" on X-Club.

The invitation expires on %s. Open the app to accept or decline.

The X-Club Team`, name, inviterName, challengeName, expiresAt.Format("Jan 2, 2006 15:04 MST")))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

// SendRegistrationApprovedEmail confirms that a pending registration was
// approved by the organizer.
func (es *EmailService) SendRegistrationApprovedEmail(email, name, challengeName string) error {
	m := es.newMessage(email, "X-Club - Registration approved")
	m.SetBody("text/plain", fmt.Sprintf(`Hello %s!

Your registration for the challenge "%s" was approved. You're in!

Good luck and have fun.

The X-Club Team`, name, challengeName))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send approval email: %w", err)
	}
	return nil
}

// SendRaceRegistrationEmail confirms a race registration.
func (es *EmailService) SendRaceRegistrationEmail(email, name, raceTitle string, raceDate time.Time) error {
	m := es.newMessage(email, fmt.Sprintf("X-Club - You're registered for %s", raceTitle))
	m.SetBody("text/plain", fmt.Sprintf(`Hello %s!

Your registration for "%s" on %s is confirmed.

See you at the start line!

The X-Club Team`, name, raceTitle, raceDate.Format("Jan 2, 2006")))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send race registration email: %w", err)
	}
	return nil
}
