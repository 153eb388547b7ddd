package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender("smtp.example.org", 587, "", "", "diarias@example.org")
	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), portssvc.Notification{
		To:      []string{"ana@example.org"},
		Subject: "Sua solicitação de diária #1-2025 foi criada",
		Body:    "Olá\nTudo certo.",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.org:587", gotAddr)
	assert.Equal(t, []string{"ana@example.org"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: =?utf-8?q?")
	assert.True(t, strings.HasSuffix(gotMsg, "Olá\r\nTudo certo."))
}

func TestSMTPSender_NoRecipients(t *testing.T) {
	s := NewSMTPSender("smtp.example.org", 587, "", "", "diarias@example.org")
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not dial without recipients")
		return nil
	}
	assert.NoError(t, s.Send(context.Background(), portssvc.Notification{Subject: "x"}))
}

func TestSMTPSender_Failure(t *testing.T) {
	s := NewSMTPSender("smtp.example.org", 587, "user", "pass", "diarias@example.org")
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }
	err := s.Send(context.Background(), portssvc.Notification{To: []string{"a@example.org"}, Subject: "x"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestBuildMessageHeaders(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	msg := string(buildMessage("from@example.org", portssvc.Notification{To: []string{"a@x.org", "b@x.org"}, Subject: "Plain"}, at))
	assert.Contains(t, msg, "To: a@x.org, b@x.org\r\n")
	assert.Contains(t, msg, "Subject: Plain\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=\"utf-8\"\r\n")
}
