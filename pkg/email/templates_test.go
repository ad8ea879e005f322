package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildLeadNotificationEmail(t *testing.T) {
	msg := BuildLeadNotificationEmail(LeadEmailData{
		To:          []string{"studio@example.com"},
		StudioName:  "Interiora",
		ID:          "0190f1c2-0000-7000-8000-000000000001",
		Reference:   "K7Q2MX9P",
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		Location:    "Austin",
		Message:     "Kitchen remodel\n<script>alert(1)</script>",
		Source:      "web",
		SubmittedAt: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	})

	if got, want := msg.Subject, "New enquiry [K7Q2MX9P]: Jane Doe, Austin"; got != want {
		t.Errorf("Subject = %q, want %q", got, want)
	}
	if msg.ReplyTo != "jane@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}

	for _, want := range []string{"Jane Doe", "jane@example.com", "555-0100", "Austin", "Kitchen remodel", "0190f1c2-0000-7000-8000-000000000001"} {
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("TextBody missing %q", want)
		}
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("HTMLBody missing %q", want)
		}
	}

	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Error("HTMLBody contains unsanitised markup")
	}
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{name: "ok", from: "site@example.com", msg: Message{To: []string{"a@example.com"}, Subject: "hi", TextBody: "x"}},
		{name: "missing from", from: " ", msg: Message{To: []string{"a@example.com"}, Subject: "hi", TextBody: "x"}, wantErr: true},
		{name: "missing recipient", from: "site@example.com", msg: Message{To: []string{" "}, Subject: "hi", TextBody: "x"}, wantErr: true},
		{name: "missing subject", from: "site@example.com", msg: Message{To: []string{"a@example.com"}, TextBody: "x"}, wantErr: true},
		{name: "missing body", from: "site@example.com", msg: Message{To: []string{"a@example.com"}, Subject: "hi"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			var invalidErr *InvalidMessageError
			if tt.wantErr && !errors.As(err, &invalidErr) {
				t.Errorf("buildMessage() error = %T, want *InvalidMessageError", err)
			}
		})
	}
}

func TestClientDisabled(t *testing.T) {
	c, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "hi", TextBody: "x"})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Send() error = %v, want ErrDisabled", err)
	}
}

func TestNewRequiresHostWhenEnabled(t *testing.T) {
	_, err := New(Config{Enabled: true, From: "site@example.com"})
	var invalidErr *InvalidMessageError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("New() error = %v, want *InvalidMessageError", err)
	}
}
