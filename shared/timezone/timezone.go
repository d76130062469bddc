package timezone

import (
	"storeflight/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultName = "UTC"

var (
	once     sync.Once
	location = time.UTC
)

// Location returns the zone named by APP_TIMEZONE, loaded on first use.
// An unknown name falls back to UTC.
func Location() *time.Location {
	once.Do(func() {
		location = load(config.Get().App.Timezone)
	})

	return location
}

func load(name string) *time.Location {
	if name == "" {
		name = defaultName
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", loc.String()).Msg("application timezone loaded")

	return loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
