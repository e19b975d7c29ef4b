package email

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/BangJepp56/ini-dashboard-admin/pkg/circuitbreaker"
)

// Service sends operator emails.
type Service interface {
	Send(ctx context.Context, subject, body string) error
}

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// dialer is the part of gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpService struct {
	config Config
	dialer dialer
	cb     *circuitbreaker.CircuitBreaker
}

// NewSMTPService sends through an SMTP relay. Consecutive failures open a
// circuit breaker so a dead relay is not dialed for every notification.
func NewSMTPService(config Config) (Service, error) {
	if config.Host == "" || config.From == "" {
		return nil, errors.New("email host and from address are required")
	}
	if len(config.Recipients) == 0 {
		return nil, errors.New("at least one email recipient is required")
	}
	return newSMTPService(config, gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)), nil
}

func newSMTPService(config Config, d dialer) *smtpService {
	return &smtpService{
		config: config,
		dialer: d,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
		}),
	}
}

func (s *smtpService) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", s.config.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.cb.Execute(func() error { return s.dialer.DialAndSend(m) }); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Recorder keeps sent emails in memory. Tests and local runs use it.
type Recorder struct {
	mu   sync.Mutex
	Sent []Sent
}

type Sent struct {
	Subject string
	Body    string
}

func (r *Recorder) Send(_ context.Context, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, Sent{Subject: subject, Body: body})
	return nil
}

func (r *Recorder) Messages() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.Sent...)
}
