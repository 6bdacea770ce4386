package mq

import (
	"context"
	"encoding/json"

	"github.com/aryasaputra/gokey/internal/identity/usecase"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/aryasaputra/gokey/internal/pkg/messaging"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Destinations for identity audit events. Consumers subscribe by these names.
const (
	userRegisteredDestination = "identity.user.registered"
	userVerifiedDestination   = "identity.user.verified"
)

type userRegisteredMessage struct {
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	FullName     string `json:"full_name"`
}

type userVerifiedMessage struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	body, err := json.Marshal(userRegisteredMessage{
		UserID:       msg.UserID,
		Email:        msg.Email,
		MobileNumber: msg.MobileNumber,
		FullName:     msg.FullName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, userRegisteredDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishUserVerified(ctx context.Context, msg usecase.UserVerifiedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserVerified")
	defer span.End()

	body, err := json.Marshal(userVerifiedMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, userVerifiedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
