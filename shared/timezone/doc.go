// Package timezone pins wall-clock times to the zone configured by
// APP_TIMEZONE. Outbox scheduling reads Now and customer-facing documents
// render timestamps through Format.
package timezone
