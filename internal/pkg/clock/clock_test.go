package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestToday_UsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// 20:00 UTC on the 9th is already the 10th in UTC+7.
	c := fixedClock{t: time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC)}

	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Today(c, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Today(c, jakarta))
	assert.Equal(t, Today(c, time.UTC), Today(c, nil))
}

func TestReal_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Real().Now().Location())
}
