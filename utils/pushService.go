package utils

import (
	"fmt"
	"keciapp/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// SendPush delivers one push notification through the push gateway.
func SendPush(deviceToken, title, message string) error {
	if config.AppConfig.PushGatewayKey == "" {
		log.Printf("Skipping push (no PUSH_GATEWAY_KEY): %s", title)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PushGatewayKey).
		SetBody(map[string]string{
			"token":   deviceToken,
			"title":   title,
			"message": message,
		}).
		Post(config.AppConfig.PushGatewayURL)
	if err != nil {
		log.Printf("Error sending push: %v", err)
		return err
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Push gateway rejected notification: %d %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode())
	}
	return nil
}
