package audit

import "time"

// Action names the audited operation.
type Action string

const (
	ActionChargeCreated   Action = "charge_created"
	ActionChargeUpdated   Action = "charge_updated"
	ActionChargeCancelled Action = "charge_cancelled"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      Action    `json:"action"`
	RequestID   string    `json:"request_id,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	EntryNumber string    `json:"entry_number,omitempty"`
	ChargeID    string    `json:"land_charge_id,omitempty"`
}
