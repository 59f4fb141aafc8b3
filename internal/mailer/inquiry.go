package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ContactFormName is the display name on every inquiry email.
const ContactFormName = "VinFast Contact Form"

const defaultCarName = "a VinFast vehicle"

var ErrMissingFields = errors.New("please fill in all required fields")

// Inquiry is a visitor's contact-form submission, optionally about one car.
type Inquiry struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Message string `json:"message"`
	CarName string `json:"carName,omitempty"`
	CarID   string `json:"carId,omitempty"`
}

// Validate requires name, phone, address and message.
func (i Inquiry) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", i.Name},
		{"phone", i.Phone},
		{"address", i.Address},
		{"message", i.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// Subject is "Interested in <car>" with a generic fallback.
func (i Inquiry) Subject() string {
	car := strings.TrimSpace(i.CarName)
	if car == "" {
		car = defaultCarName
	}
	return "Interested in " + car
}

var inquiryHTML = template.Must(template.New("inquiry").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">New vehicle inquiry</h2>
  {{- if .CarName}}
  <div style="background-color: #dbeafe; padding: 15px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #2563eb;">
    <p style="margin: 0;"><strong>Vehicle:</strong> {{.CarName}}</p>
    {{- if .CarID}}
    <p style="margin: 5px 0 0 0;"><strong>Vehicle ID:</strong> {{.CarID}}</p>
    {{- end}}
  </div>
  {{- end}}
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <p><strong>Address:</strong> {{.Address}}</p>
  </div>
  <div style="background-color: #ffffff; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px;">
    <h3 style="color: #1f2937; margin-top: 0;">Message:</h3>
    <p style="color: #4b5563; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <p style="color: #6b7280; font-size: 12px; margin-top: 20px;">This email was sent automatically from the vehicle inquiry form on the website.</p>
</div>
`))

func (i Inquiry) text() string {
	var b strings.Builder
	b.WriteString("New vehicle inquiry\n\n")
	if i.CarName != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", i.CarName)
		if i.CarID != "" {
			fmt.Fprintf(&b, "Vehicle ID: %s\n", i.CarID)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nAddress: %s\n\nMessage:\n%s\n", i.Name, i.Phone, i.Address, i.Message)
	return b.String()
}

// ComposeInquiry renders inq into a Message from the contact form to the
// site's inbox.
func ComposeInquiry(inq Inquiry, from, to string) (Message, error) {
	if err := inq.Validate(); err != nil {
		return Message{}, err
	}
	var html bytes.Buffer
	if err := inquiryHTML.Execute(&html, inq); err != nil {
		return Message{}, fmt.Errorf("render inquiry: %w", err)
	}
	msg := Message{
		From:     from,
		FromName: ContactFormName,
		Subject:  inq.Subject(),
		HTML:     html.String(),
		Text:     inq.text(),
	}
	if to != "" {
		msg.To = []string{to}
	}
	return msg, nil
}
