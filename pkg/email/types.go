package email

// Message is a single outgoing mail. Headers carries extra headers such as
// the lead reference; empty keys or values are skipped.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}
