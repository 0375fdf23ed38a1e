package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(Config{Sender: "noreply@example.com"})
	assert.Error(t, err)

	_, err = NewSMTPMailer(Config{Host: "smtp.example.com"})
	assert.Error(t, err)

	m, err := NewSMTPMailer(Config{Host: "smtp.example.com", Sender: "noreply@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "587", m.cfg.Port)
}

func TestSMTPMailer_Send(t *testing.T) {
	m, err := NewSMTPMailer(Config{
		Host:     "smtp.example.com",
		Port:     "2525",
		Username: "user",
		Password: "pass",
		Sender:   "noreply@example.com",
	})
	require.NoError(t, err)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg, gotAuth = addr, to, string(msg), a
		return nil
	}

	err = m.Send(context.Background(), "user@example.com", "Welcome", "<p>Hello</p>")
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.NotNil(t, gotAuth)
	assert.Contains(t, gotMsg, "Subject: Welcome\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8")
}

func TestSMTPMailer_SendErrors(t *testing.T) {
	m, err := NewSMTPMailer(Config{Host: "smtp.example.com", Sender: "noreply@example.com"})
	require.NoError(t, err)
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	assert.Error(t, m.Send(context.Background(), "", "Welcome", "hi"))
	assert.Error(t, m.Send(context.Background(), "user@example.com", "", "hi"))

	err = m.Send(context.Background(), "user@example.com", "Welcome", "plain text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
