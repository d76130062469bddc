package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	AdminEmail  = "admin_email.html"
	ClientEmail = "client_email.html"
	Receipt     = "receipt.html"
)

// WhatsAppContact is printed in the customer confirmation.
const WhatsAppContact = "00212627201720 / 00221762383780"

//go:embed html/*.html
var files embed.FS

var parsed = template.Must(template.ParseFS(files, "html/*.html"))

// View is the flattened reservation snapshot the templates render. Empty
// optional fields print as "-".
type View struct {
	ID              int64
	FullName        string
	Phone           string
	Email           string
	ServiceType     string
	FromCity        string
	ToCity          string
	CheckIn         string
	CheckOut        string
	Travelers       int
	Notes           string
	DepositAmount   string
	Currency        string
	PaymentMethod   string
	PaypalOrderID   string
	PaypalCaptureID string
	Status          string
	Contact         string
	IssuedAt        string
}

func Render(name string, view View) (string, error) {
	var buf bytes.Buffer

	if err := parsed.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.String(), nil
}

func AdminSubject(view View) string {
	return fmt.Sprintf("🧾 Paiement reçu #%d - %s", view.ID, view.ServiceType)
}

func ClientSubject(view View) string {
	return fmt.Sprintf("✅ Paiement confirmé - StoreFlight (#%d)", view.ID)
}
