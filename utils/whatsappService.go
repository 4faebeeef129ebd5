package utils

import (
	"log"

	"learnhub/config"

	"github.com/go-resty/resty/v2"
)

// SendWhatsappMessage pushes a templated WhatsApp message through the
// configured provider API. Delivery is best-effort; callers fire this in a
// goroutine and never roll back state when it fails.
func SendWhatsappMessage(mobile, message string) error {
	if config.AppConfig.WhatsappApiUrl == "" {
		log.Println("WhatsApp API not configured, skipping message to", mobile)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.WhatsappApiKey).
		SetBody(map[string]string{
			"to":   mobile,
			"body": message,
		}).
		Post(config.AppConfig.WhatsappApiUrl)
	if err != nil {
		log.Printf("Error sending WhatsApp message to %s: %v", mobile, err)
		return err
	}
	if resp.StatusCode() >= 400 {
		log.Printf("WhatsApp provider rejected message to %s: %s", mobile, resp.String())
	}
	return nil
}
