package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"
)

// Job is one queued message for a trusted contact.
type Job struct {
	To      string    `json:"to"`
	Contact string    `json:"contact"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues contact notifications on a redis list and drains
// them with a background worker. Delivery is best effort; the caller
// only waits for the enqueue.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, contact, subject, body string) error {
	job := Job{
		To:      to,
		Contact: contact,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue notification to %s: %v", contact, err)
		return err
	}

	metrics.RecordNotificationQueued()
	logger.Infof("Notification queued: %s to %s", subject, contact)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Delivering notification to %s (attempt %d)", job.Contact, job.Tries)
	if err := s.deliver(job); err != nil {
		logger.Errorf("Failed to deliver notification to %s: %v", job.Contact, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying notification to %s (attempt %d)", job.Contact, job.Tries+1)
		} else {
			logger.Errorf("Notification to %s failed after 3 attempts", job.Contact)
			s.saveFailed(job, err)
		}
		return
	}

	logger.Infof("Notification delivered to %s", job.Contact)
}

func (s *Service) deliver(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.Contact)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// SendJourneyShare tells a trusted contact the commuter is on the move.
func (s *Service) SendJourneyShare(ctx context.Context, to, contact, userName string, trip ledger.Trip) error {
	subject := "MzansiPass: " + userName + " is on the move"
	body := fmt.Sprintf(`Hi %s,

%s is sharing their trip with you:

Operator: %s
Boarded at: %s
Started: %s

You will get another message if the trip is disrupted.

- MzansiPass`, contact, userName, trip.Provider, trip.From, trip.Date.Format("Jan 2, 2006 at 3:04 PM"))

	return s.Send(ctx, to, contact, subject, body)
}

// SendDisruptionAlert forwards a journey disruption to a trusted contact.
func (s *Service) SendDisruptionAlert(ctx context.Context, to, contact, userName, notice string) error {
	subject := "MzansiPass: " + userName + "'s trip is disrupted"
	body := fmt.Sprintf(`Hi %s,

%s

- MzansiPass`, contact, notice)

	return s.Send(ctx, to, contact, subject, body)
}
