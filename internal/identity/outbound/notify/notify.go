// Package notify delivers one-time codes to users over email or SMS,
// depending on the shape of the identifier the code was issued for.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aryasaputra/gokey/internal/identity/entity"
	"github.com/aryasaputra/gokey/internal/pkg/instrument"
	"github.com/aryasaputra/gokey/internal/pkg/mail"
	"github.com/aryasaputra/gokey/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

type Notify struct {
	mailer mail.Mail
	smser  *sms.Gateway
	ins    instrument.Instrumentation
}

func NewNotify(mailer mail.Mail, smser *sms.Gateway, ins instrument.Instrumentation) *Notify {
	return &Notify{
		mailer: mailer,
		smser:  smser,
		ins:    ins,
	}
}

// SendOTP delivers the plaintext code to the identifier. Email identifiers go
// through the mailer, anything else through the SMS gateway.
func (n *Notify) SendOTP(ctx context.Context, identifier, code string, purpose entity.OTPPurpose) (err error) {
	ctx, span := n.ins.Tracer("identity.outbound.notify").Start(ctx, "SendOTP")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if strings.Contains(identifier, "@") {
		return n.mailer.Send(ctx, mail.Message{
			To:       []string{identifier},
			Subject:  n.subject(purpose),
			TextBody: fmt.Sprintf("Your verification code is %s. It expires shortly, do not share it with anyone.", code),
		})
	}

	return n.smser.Send(ctx, identifier, fmt.Sprintf("%s: %s is your verification code.", n.subject(purpose), code))
}

func (n *Notify) subject(purpose entity.OTPPurpose) string {
	switch purpose {
	case entity.OTPPurposeLogin:
		return "GoKey sign-in code"
	default:
		return "GoKey verification code"
	}
}
