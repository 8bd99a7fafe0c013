package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

const dialTimeout = 10 * time.Second

// Transport реализует SMTP транспорт для отправки писем.
type Transport struct {
	cfg config.SMTP
	log *slog.Logger
}

// smtpClientWrapper обертка для *smtp.Client, реализующая интерфейс Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error { return w.client.Mail(from) }

func (w *smtpClientWrapper) Rcpt(to string) error { return w.client.Rcpt(to) }

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) { return w.client.Data() }

func (w *smtpClientWrapper) Quit() error { return w.client.Quit() }

func (w *smtpClientWrapper) Close() error { return w.client.Close() }

// NewTransport создает новый экземпляр Transport.
func NewTransport(cfg config.SMTP, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Connect устанавливает соединение с SMTP сервером. STARTTLS включается, если сервер
// его поддерживает; аутентификация выполняется, только если задан пользователь.
func (t *Transport) Connect() (Client, error) {
	const op = "smtp.Transport.Connect"
	log := t.log.With(sl.Op(op))

	addr := net.JoinHostPort(t.cfg.SMTPHost, strconv.Itoa(t.cfg.SMTPPort))
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fail := func(msg string, err error) (Client, error) {
		log.Error(msg, sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %s: %w", op, msg, err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName: t.cfg.SMTPHost,
			MinVersion: tls.VersionTLS12,
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fail("failed to start TLS", err)
		}
	}

	if t.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPassword, t.cfg.SMTPHost)
		if err = client.Auth(auth); err != nil {
			return fail("smtp auth failed", err)
		}
	}

	return &smtpClientWrapper{client: client}, nil
}

// From возвращает адрес отправителя в виде, пригодном для MAIL FROM.
func (t *Transport) From() string {
	if a, err := mail.ParseAddress(t.cfg.SMTPFrom); err == nil {
		return a.Address
	}
	if t.cfg.SMTPUser != "" {
		return t.cfg.SMTPUser
	}
	return t.cfg.SMTPFrom
}
