// Package service holds business helpers shared by the HTTP handlers
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends the account mails. Handlers only depend on this interface
// so tests can swap in a fake.
type Mailer interface {
	SendVerificationMail(sendTo, userID, token string) error
	SendResetPasswordMail(sendTo, userID, token string) error
}

// SMTPMailer sends mails through the SMTP server configured under mail.*
type SMTPMailer struct{}

func baseURL() string {
	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	return scheme + "://" + viper.GetString("host.domain")
}

func (SMTPMailer) send(sendTo, subject, body string) error {
	from := viper.GetString("mail.sender")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}

func (s SMTPMailer) SendVerificationMail(sendTo, userID, token string) error {
	link := fmt.Sprintf("%v/api/users/verify-email?user_id=%v&token=%v", baseURL(), userID, token)

	return s.send(sendTo,
		"Verify your email address",
		fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.", link))
}

func (s SMTPMailer) SendResetPasswordMail(sendTo, userID, token string) error {
	link := fmt.Sprintf("%v/reset-password/%v/%v", baseURL(), userID, token)

	return s.send(sendTo,
		"Reset your password",
		fmt.Sprintf("Click <a href='%v'>here</a> to reset your password. If you didn't request this you can ignore this mail.", link))
}
