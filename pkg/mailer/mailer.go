package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer define a interface de envio de emails
type Mailer interface {
	// SendRecoveryEmail envia o link de redefinição de senha para o destinatário
	SendRecoveryEmail(to, recoveryLink string) error
}

// SMTPMailer envia emails via SMTP
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailerFromEnv cria um SMTPMailer a partir de variáveis de ambiente:
// SMTP_HOST, SMTP_PORT, EMAIL_USER, EMAIL_PASSWORD
func NewSMTPMailerFromEnv() *SMTPMailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp-mail.outlook.com"
	}

	username := os.Getenv("EMAIL_USER")

	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: os.Getenv("EMAIL_PASSWORD"),
		from:     username,
	}
}

// SendRecoveryEmail implementa Mailer.SendRecoveryEmail
func (m *SMTPMailer) SendRecoveryEmail(to, recoveryLink string) error {
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Recuperação de Senha</h2>
			<p>Olá!</p>
			<p>Você solicitou a recuperação de sua senha para o sistema.</p>
			<p><strong>Clique no link abaixo para redefinir sua senha:</strong></p>
			<p><a href="%s">Redefinir Senha</a></p>
			<p><em>Ou copie e cole este link no seu navegador:</em><br>%s</p>
			<hr>
			<p><strong>Este link é válido por 30 minutos.</strong></p>
			<p><strong>Se você não solicitou esta recuperação, ignore este email.</strong></p>
			<br>
			<p>Atenciosamente,<br>Equipe de Suporte</p>
		</body>
		</html>`, recoveryLink, recoveryLink)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Recuperação de Senha - Sistema de Vendas")
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("erro ao enviar email de recuperação: %w", err)
	}

	return nil
}
