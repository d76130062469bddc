package dto

import (
	rDto "storeflight/internal/domains/reservation/model/dto"
	"time"
)

// ReservationPaidEvent is the body published to Kafka once a reservation is paid.
type ReservationPaidEvent struct {
	EventID     string                   `json:"event_id"`
	Type        string                   `json:"type"`
	OccurredAt  time.Time                `json:"occurred_at"`
	Reservation rDto.ReservationResponse `json:"reservation"`
}

// DispatchResult summarises one pass over the due outbox rows.
type DispatchResult struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
}
