package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"souqora_back_end/internal/config"
	"souqora_back_end/internal/models"

	"github.com/skip2/go-qrcode"
	"github.com/wneessen/go-mail"
)

// SendEmail envoie un e-mail HTML via le SMTP configuré
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@souqora.com"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "ssl0.ovh.net"
	}

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendResetCodeEmail envoie le code de réinitialisation (valide 10 minutes)
func SendResetCodeEmail(to, name, code string) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Réinitialisation du mot de passe</h2>
		<p>Bonjour %s,</p>
		<p>Voici votre code de réinitialisation :</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 6px; text-align: center;">%s</p>
		<p>Ce code expire dans 10 minutes. Si vous n'êtes pas à l'origine de cette demande, ignorez cet e-mail.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Souqora</strong>
		</p>
	</div>
</body>
</html>`, name, code)

	return SendEmail(to, "Votre code de réinitialisation (valide 10 min)", html)
}

// orderQRDataURI génère un QR de suivi de commande encodé en data URI
func orderQRDataURI(orderID string) string {
	png, err := qrcode.Encode(config.BaseURL()+"/api/v1/orders/"+orderID, qrcode.Medium, 256)
	if err != nil {
		log.Println("⚠️ Génération QR impossible:", err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// productTitles mappe les ids produits (hex) vers leur titre.
func GenerateOrderConfirmationHTML(order models.Order, productTitles map[string]string) string {
	itemsHTML := ""
	for _, item := range order.CartItems {
		title := productTitles[item.Product.Hex()]
		if title == "" {
			title = "Produit " + item.Product.Hex()
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
			</tr>`, title, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrHTML := ""
	if uri := orderQRDataURI(order.ID.Hex()); uri != "" {
		qrHTML = fmt.Sprintf(`
		<p style="text-align: center;">
			<img src="%s" alt="QR de suivi" width="160" height="160"/><br>
			<span style="color: #777;">Scannez pour suivre votre commande</span>
		</p>`, uri)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Souqora</strong>
		</p>
	</div>
</body>
</html>`, order.ID.Hex(), itemsHTML, order.TotalOrderPrice, qrHTML)
}
