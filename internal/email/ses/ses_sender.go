package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"obrapass/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendExpiryDigest(ctx context.Context, toEmail, toName string, items []port.ExpiringDocument) error {
	subject := fmt.Sprintf("Obrapass: %d document(s) expiring soon", len(items))
	htmlBody := buildDigestHTML(toName, items)
	textBody := buildDigestText(toName, items)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDigestHTML(name string, items []port.ExpiringDocument) string {
	var rows strings.Builder
	for _, it := range items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>`+
				`<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>`,
			it.Category, it.EntityName, it.FileName, it.ExpiresAt.Format("2006-01-02")))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Documents expiring soon</h2>
  <p>Hi %s,</p>
  <p>The following compliance documents are about to expire. Upload replacements before their expiry dates to keep your sites compliant:</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr>
      <th style="text-align: left; padding: 8px; border-bottom: 2px solid #333;">Category</th>
      <th style="text-align: left; padding: 8px; border-bottom: 2px solid #333;">Entity</th>
      <th style="text-align: left; padding: 8px; border-bottom: 2px solid #333;">File</th>
      <th style="text-align: left; padding: 8px; border-bottom: 2px solid #333;">Expires</th>
    </tr>
    %s
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Obrapass - Construction Compliance Platform</p>
</body>
</html>`, name, rows.String())
}

func buildDigestText(name string, items []port.ExpiringDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following compliance documents are about to expire:\n\n", name)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s / %s (%s), expires %s\n",
			it.Category, it.EntityName, it.FileName, it.ExpiresAt.Format("2006-01-02"))
	}
	b.WriteString("\nUpload replacements before the expiry dates to keep your sites compliant.\n\nObrapass Team")
	return b.String()
}
