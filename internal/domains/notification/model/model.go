package model

import "time"

const (
	TableName  = "notification_outbox"
	EntityName = "notification_outbox"
)

const (
	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldKind          = "kind"
	FieldStatus        = "status"
	FieldNextAttemptAt = "next_attempt_at"
)

const (
	KindEmail   = "email"
	KindEvent   = "event"
	KindReceipt = "receipt"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Outbox is one side task of a paid reservation. Recipient holds the email
// address, the Kafka topic or the receipt object name depending on Kind.
type Outbox struct {
	ID            int64      `db:"id"              generated:"true"`
	ReservationID int64      `db:"reservation_id"`
	Kind          string     `db:"kind"`
	Recipient     string     `db:"recipient"`
	Subject       string     `db:"subject"`
	Payload       string     `db:"payload"`
	Status        string     `db:"status"`
	Attempts      int        `db:"attempts"`
	LastError     *string    `db:"last_error"`
	NextAttemptAt time.Time  `db:"next_attempt_at"`
	CreatedAt     time.Time  `db:"created_at"      generated:"true"`
	SentAt        *time.Time `db:"sent_at"`
}

// SentFields marks a row delivered.
type SentFields struct {
	Status   string    `db:"status"`
	Attempts int       `db:"attempts"`
	SentAt   time.Time `db:"sent_at"`
}

// RetryFields records a failed attempt. Status stays pending until the
// attempts are exhausted.
type RetryFields struct {
	Status        string    `db:"status"`
	Attempts      int       `db:"attempts"`
	LastError     string    `db:"last_error"`
	NextAttemptAt time.Time `db:"next_attempt_at"`
}

// EventReservationPaid is the type of the event published for every paid reservation.
const EventReservationPaid = "reservation.paid"
