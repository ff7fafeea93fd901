package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/dto"
)

// SubmissionEvent is broadcast when a member's submission is accepted, so
// leads can be notified without the request waiting on delivery.
type SubmissionEvent struct {
	PortfolioUUID string                 `json:"portfolio_uuid"`
	PortfolioName string                 `json:"portfolio_name"`
	Submission    dto.SubmissionResponse `json:"submission"`
	SentAt        time.Time              `json:"sent_at"`
}

// SubmissionEventPublisher fans submission events out to interested
// consumers. Publish failures are logged, never surfaced to the submitter.
type SubmissionEventPublisher interface {
	PublishSubmission(event SubmissionEvent)
}

type natsSubmissionPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSSubmissionPublisher builds a publisher over an existing NATS
// connection. A nil connection yields a publisher that drops events.
func NewNATSSubmissionPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) SubmissionEventPublisher {
	return &natsSubmissionPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "submission_publisher").Logger(),
	}
}

func (p *natsSubmissionPublisher) PublishSubmission(event SubmissionEvent) {
	if p.conn == nil || p.subject == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode submission event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", p.subject).Msg("failed to publish submission event")
	}
}
