package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"fintracker/internal/config"
)

// AttachmentName is the filename of the emailed report.
const AttachmentName = "Relatorio_Financeiro.pdf"

const (
	mailSubject = "Seu Relatório de Transações"
	mailBody    = `<p>Olá,</p>
<p>Em anexo está o relatório de transações que você solicitou.</p>
<p>Atenciosamente,<br>Equipe %s</p>`
)

// Mailer delivers a rendered report to a recipient.
type Mailer interface {
	Send(ctx context.Context, to string, pdf []byte) error
}

// SMTPMailer sends reports through an SMTP server. Port 465 uses implicit
// TLS; any other port upgrades with STARTTLS when offered.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates an SMTPMailer. Callers check cfg.Enabled first.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send builds the message and delivers it, honouring ctx while dialing.
func (m *SMTPMailer) Send(ctx context.Context, to string, pdf []byte) error {
	msg, err := m.buildMessage(to, pdf)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Pass),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send report mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to string, pdf []byte) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(mailSubject)
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(mailBody, m.cfg.FromName))
	if err := msg.AttachReader(AttachmentName, bytes.NewReader(pdf),
		mail.WithFileContentType(mail.ContentType("application/pdf"))); err != nil {
		return nil, fmt.Errorf("failed to attach report: %w", err)
	}
	return msg, nil
}
