package email

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// escape strips any markup from visitor input before it is placed in an
// HTML body. StrictPolicy also entity-encodes what it keeps.
func escape(s string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy.Sanitize(s)
}

// LeadEmailData contains the data needed for the studio's new-lead email.
type LeadEmailData struct {
	To            []string
	SubjectPrefix string
	StudioName    string

	ID          string
	Reference   string
	Name        string
	Email       string
	Phone       string
	Location    string
	Message     string
	Source      string
	SubmittedAt time.Time
}

// BuildLeadNotificationEmail renders the email sent to the studio inbox
// when a visitor submits the contact form. Replies go to the visitor.
func BuildLeadNotificationEmail(data LeadEmailData) Message {
	prefix := data.SubjectPrefix
	if prefix == "" {
		prefix = "New enquiry"
	}
	studio := data.StudioName
	if studio == "" {
		studio = "the studio"
	}

	subject := fmt.Sprintf("%s [%s]: %s, %s", prefix, data.Reference, oneLine(data.Name), oneLine(data.Location))
	submitted := data.SubmittedAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST")

	textBody := fmt.Sprintf(`A new enquiry was submitted to %s.

Reference: %s
Name:      %s
Email:     %s
Phone:     %s
Location:  %s
Submitted: %s
Source:    %s

Message:
%s

Lead ID: %s
Reply to this email to answer the client directly.`,
		studio, data.Reference, data.Name, data.Email, data.Phone, data.Location,
		submitted, data.Source, data.Message, data.ID)

	htmlMessage := strings.ReplaceAll(escape(data.Message), "\n", "<br>")

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Georgia, 'Times New Roman', serif; line-height: 1.6; color: #2b2b2b; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="font-weight: 400; letter-spacing: 0.02em;">New enquiry &middot; %s</h2>
    <table style="border-collapse: collapse; width: 100%%; margin: 20px 0;">
        <tr><td style="padding: 6px 12px 6px 0; color: #777;">Name</td><td style="padding: 6px 0;">%s</td></tr>
        <tr><td style="padding: 6px 12px 6px 0; color: #777;">Email</td><td style="padding: 6px 0;"><a href="mailto:%s">%s</a></td></tr>
        <tr><td style="padding: 6px 12px 6px 0; color: #777;">Phone</td><td style="padding: 6px 0;">%s</td></tr>
        <tr><td style="padding: 6px 12px 6px 0; color: #777;">Location</td><td style="padding: 6px 0;">%s</td></tr>
        <tr><td style="padding: 6px 12px 6px 0; color: #777;">Submitted</td><td style="padding: 6px 0;">%s</td></tr>
    </table>
    <div style="background-color: #f6f3ee; padding: 16px; border-left: 3px solid #8a7a63;">%s</div>
    <p style="color: #999; font-size: 12px; margin-top: 30px;">Lead %s &middot; source %s</p>
</body>
</html>`,
		escape(data.Reference), escape(data.Name), escape(data.Email), escape(data.Email),
		escape(data.Phone), escape(data.Location), submitted, htmlMessage,
		escape(data.ID), escape(data.Source))

	return Message{
		To:       data.To,
		ReplyTo:  data.Email,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
		Headers: map[string]string{
			"X-Lead-Reference": data.Reference,
		},
	}
}

// oneLine keeps header values on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
