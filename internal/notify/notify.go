// Package notify delivers best-effort marketplace emails. Delivery failure
// is the caller's problem only to the extent of logging and reporting; it
// never rolls back the work that triggered the email.
package notify

import (
	"context"
	"fmt"
	"marketplace-api/internal/entity"

	"go.uber.org/zap"
)

type Notifier interface {
	BriefResponseReceived(ctx context.Context, supplier *entity.Supplier, brief *entity.Brief, response *entity.BriefResponse) error
}

// EmailNotifier renders notification emails and hands them to the logging
// sink. Wiring a real SMTP transport is a deployment concern.
type EmailNotifier struct {
	log         *zap.Logger
	frontendURL string
}

func NewEmailNotifier(log *zap.Logger, frontendURL string) *EmailNotifier {
	return &EmailNotifier{log: log, frontendURL: frontendURL}
}

func (n *EmailNotifier) BriefResponseReceived(ctx context.Context, supplier *entity.Supplier, brief *entity.Brief, response *entity.BriefResponse) error {
	subject := fmt.Sprintf("We've received your application for '%s'", brief.Data.String("title"))
	body := fmt.Sprintf(
		"Thanks %s, your response to '%s' was received.\n\nView the opportunity at %s/digital-marketplace/opportunities/%s",
		supplier.Name, brief.Data.String("title"), n.frontendURL, brief.Id,
	)

	n.log.Info("sending brief response received email",
		zap.String("to", supplier.ContactEmail),
		zap.String("subject", subject),
		zap.String("briefId", brief.Id.String()),
		zap.String("briefResponseId", response.Id.String()),
		zap.Int("bodyBytes", len(body)),
	)

	return nil
}
