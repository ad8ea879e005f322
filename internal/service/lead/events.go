package lead

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Alijeyrad/interiora_backend/pkg/constants"
)

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// EventNotifier publishes the lead on interiora.lead.created.<id> so a
// worker can deliver it out of band.
type EventNotifier struct {
	pub Publisher
}

func NewEventNotifier(pub Publisher) *EventNotifier {
	return &EventNotifier{pub: pub}
}

func Subject(l Lead) string {
	return constants.SubjectLeadCreatedPrefix + l.ID.String()
}

func (n *EventNotifier) NotifyLead(ctx context.Context, l Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}
	if err := n.pub.Publish(Subject(l), data); err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}
	return nil
}

// DecodeEvent parses a payload produced by EventNotifier.
func DecodeEvent(data []byte) (Lead, error) {
	var l Lead
	if err := json.Unmarshal(data, &l); err != nil {
		return Lead{}, fmt.Errorf("decode lead event: %w", err)
	}
	return l, nil
}
