package services

import (
	"catering-backend/models"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const (
	KindStatus   = "status"
	KindReminder = "reminder"
)

// MessageSender delivers one text message and returns its provider id.
type MessageSender interface {
	Send(to, from, body string) (string, error)
}

type TwilioSender struct {
	client *twilio.RestClient
}

func NewTwilioSender(accountSid, authToken string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (t *TwilioSender) Send(to, from, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

type NotifierConfig struct {
	PhoneNumber    string
	WhatsAppNumber string
}

// Notifier texts customers about their bookings. A nil sender disables
// delivery; each attempted send leaves a NotificationLog row.
type Notifier struct {
	sender  MessageSender
	logs    NotificationLogStore
	cfg     NotifierConfig
	metrics *Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewNotifier(sender MessageSender, logs NotificationLogStore, cfg NotifierConfig, metrics *Metrics, log *zap.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		logs:    logs,
		cfg:     cfg,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

func (n *Notifier) BookingStatusChanged(ctx context.Context, b models.Booking) error {
	var msg string
	switch b.Status {
	case models.BookingConfirmed:
		msg = fmt.Sprintf("Hi %s, your %s booking %s on %s is confirmed. We look forward to serving you!",
			b.Customer, eventLabel(b), b.Reference, b.Date)
	case models.BookingRejected:
		msg = fmt.Sprintf("Hi %s, we're sorry, we can't take booking %s on %s. Please pick another date.",
			b.Customer, b.Reference, b.Date)
	case models.BookingCompleted:
		msg = fmt.Sprintf("Hi %s, thank you for choosing us for your %s! We'd love your feedback.",
			b.Customer, eventLabel(b))
	case models.BookingCancelled:
		msg = fmt.Sprintf("Hi %s, booking %s on %s has been cancelled.",
			b.Customer, b.Reference, b.Date)
	default:
		return nil
	}
	return n.send(ctx, b, KindStatus, msg)
}

func (n *Notifier) EventReminder(ctx context.Context, b models.Booking) error {
	msg := fmt.Sprintf("Hi %s, a reminder that we're catering your %s tomorrow (%s) at %s for %d guests. Balance due: %.2f.",
		b.Customer, eventLabel(b), b.Date, b.Location, b.Guests, b.Balance)
	return n.send(ctx, b, KindReminder, msg)
}

func eventLabel(b models.Booking) string {
	if b.EventType == "" {
		return "event"
	}
	return b.EventType
}

func (n *Notifier) send(ctx context.Context, b models.Booking, kind, message string) error {
	if !n.Enabled() {
		if n != nil {
			n.log.Debug("notifications disabled, skipping", zap.String("bookingId", b.ID), zap.String("kind", kind))
		}
		return nil
	}
	if b.Phone == "" {
		return nil
	}

	// WhatsApp when the number is in E.164 form and a WhatsApp sender exists, else SMS.
	channel := "sms"
	to, from := b.Phone, n.cfg.PhoneNumber
	if strings.HasPrefix(b.Phone, "+") && n.cfg.WhatsAppNumber != "" {
		channel = "whatsapp"
		to = "whatsapp:" + b.Phone
		from = "whatsapp:" + n.cfg.WhatsAppNumber
	}

	sid, sendErr := n.sender.Send(to, from, message)
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		status = "failed"
		errorMsg = sendErr.Error()
		n.log.Warn("notification send failed",
			zap.String("bookingId", b.ID),
			zap.String("channel", channel),
			zap.Error(sendErr))
	} else {
		n.log.Info("notification sent",
			zap.String("bookingId", b.ID),
			zap.String("channel", channel),
			zap.String("sid", sid))
	}
	n.metrics.NotificationSent(channel, status)

	entry := &models.NotificationLog{
		BookingID:    b.ID,
		Kind:         kind,
		Channel:      channel,
		To:           to,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       n.now(),
	}
	if err := n.logs.Create(ctx, entry); err != nil {
		n.log.Warn("failed to log notification", zap.String("bookingId", b.ID), zap.Error(err))
	}

	if sendErr != nil {
		return fmt.Errorf("send %s notification: %w", kind, sendErr)
	}
	return nil
}
