package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDepositReceipt(toEmail, guestName string, amountMinor int64, currency, propertyName string) error
	SendRefundNotice(toEmail, guestName string, refundMinor, remainingMinor int64, currency string) error
	SendArrivalGuide(toEmail, guestName, propertyName, shareURL string, qrPNG []byte) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	publicURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, publicURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		publicURL:   publicURL,
	}
}

func formatMinor(amount int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, currency)
}

func (s *emailService) SendDepositReceipt(toEmail, guestName string, amountMinor int64, currency, propertyName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your security deposit has been placed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>A security deposit of <strong>%s</strong> has been placed for your stay at <strong>%s</strong>.</p>
			<p>The hold will be released after checkout, minus any deductions for damages.</p>
			<p>Safe travels!</p>
		</div>
	`, guestName, formatMinor(amountMinor, currency), propertyName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send deposit receipt to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}

func (s *emailService) SendRefundNotice(toEmail, guestName string, refundMinor, remainingMinor int64, currency string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Deposit refund issued")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>A refund of <strong>%s</strong> has been issued from your security deposit.</p>
			<p>Remaining held amount: <strong>%s</strong>.</p>
			<p>Refunds typically appear on your statement within 5-10 business days.</p>
		</div>
	`, guestName, formatMinor(refundMinor, currency), formatMinor(remainingMinor, currency))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send refund notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}

func (s *emailService) SendArrivalGuide(toEmail, guestName, propertyName, shareURL string, qrPNG []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Arrival guide for %s", propertyName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Everything you need for your arrival at <strong>%s</strong> is here:</p>
			<p><a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open arrival guide</a></p>
			<p>Or scan the attached QR code on arrival.</p>
		</div>
	`, guestName, propertyName, shareURL)

	m.SetBody("text/html", body)

	if len(qrPNG) > 0 {
		m.Attach("arrival-guide-qr.png",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrPNG)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"image/png"}}),
		)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send arrival guide to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
