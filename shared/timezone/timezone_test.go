package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty falls back to UTC", zone: "", want: "UTC"},
		{name: "iana name", zone: "Europe/Paris", want: "Europe/Paris"},
		{name: "unknown falls back to UTC", zone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, load(tt.zone).String())
		})
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, ts.In(Location()).Format(time.DateTime), Format(ts, time.DateTime))
	assert.Equal(t, Location(), Now().Location())
}
