package smtp

import (
	"bytes"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, textBody, htmlBody string) error
	IsConfigured() bool
}

func Connect(user, password, host, port string, tlsEnabled bool, senderEmail, senderName string) error {
	if senderEmail == "" {
		senderEmail = user
	}
	Instance = &impl{
		user:        user,
		password:    password,
		host:        host,
		port:        port,
		tlsEnabled:  tlsEnabled,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
	return nil
}

type impl struct {
	user        string
	password    string
	host        string
	port        string
	tlsEnabled  bool
	senderEmail string
	senderName  string
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, subject, textBody, htmlBody string) (err error) {
	logger := log.WithFields(log.Fields{
		"sender":    i.senderEmail,
		"recipient": to,
	})
	if !i.IsConfigured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	body, err := BuildMessage(i.senderEmail, i.senderName, to, subject, textBody, htmlBody)
	if err != nil {
		logger.WithError(err).Error("Ошибка формирования письма")
		return err
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	sendTo := []string{
		to,
	}
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.senderEmail, sendTo, bytes.NewReader(body))
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.senderEmail, sendTo, bytes.NewReader(body))
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

// BuildMessage MIME письмо с текстовой и (опционально) html версией
func BuildMessage(from, fromName, to, subject, textBody, htmlBody string) ([]byte, error) {
	if to == "" {
		return nil, errors.New("не указан адрес получателя")
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации письма")
	}
	return buf.Bytes(), nil
}
