package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// InquiryData dữ liệu cho email liên hệ đặt chỗ
type InquiryData struct {
	PlanTitle    string
	LocationName string
	ElementLabel string
	Name         string
	Email        string
	Message      string
}

const inquiryTemplate = `
<h3>Booking inquiry for {{.PlanTitle}}</h3>
{{if .LocationName}}<p>Venue: {{.LocationName}}</p>{{end}}
{{if .ElementLabel}}<p>Requested spot: {{.ElementLabel}}</p>{{end}}
<p>From: {{.Name}} &lt;{{.Email}}&gt;</p>
<p>{{.Message}}</p>
`

// SendInquiryEmail gửi email liên hệ về cho venue (async)
func SendInquiryEmail(to string, data InquiryData) {
	go func() { // Async để không delay response
		tmpl, err := template.New("inquiry").Parse(inquiryTemplate)
		if err != nil {
			log.Printf("Error parsing inquiry template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Error rendering inquiry email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking inquiry: "+data.PlanTitle)
		m.SetBody("text/html", body.String())
		if data.Email != "" {
			m.SetHeader("Reply-To", data.Email)
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Error sending inquiry email: %v", err)
		}
	}()
}
