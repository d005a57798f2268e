package ramadan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRamadanOnlyInMarch(t *testing.T) {
	assert.True(t, IsRamadan(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsRamadan(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDays(t *testing.T) {
	days := Days(time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC))
	assert.Len(t, days, 30)
	assert.Equal(t, "3/1/2024", days[0].Date)
	assert.Equal(t, "3/30/2024", days[29].Date)
	assert.Equal(t, SuhoorTime, days[4].Suhoor)
	assert.Equal(t, IftarTime, days[4].Iftar)

	today := 0
	for _, d := range days {
		if d.IsToday {
			today = d.Day
		}
	}
	assert.Equal(t, MockToday, today)
}

func TestStatusAt(t *testing.T) {
	fasting := StatusAt(time.Date(2024, time.March, 10, 14, 20, 30, 0, time.UTC))
	assert.Equal(t, Fasting, fasting.State)
	assert.Equal(t, "4h 24m", fasting.UntilIftar)

	iftar := StatusAt(time.Date(2024, time.March, 10, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, IftarNow, iftar.State)
	assert.Equal(t, IftarMessage, iftar.UntilIftar)

	outside := StatusAt(time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC))
	assert.False(t, outside.IsRamadan)
	assert.Equal(t, NotFasting, outside.State)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }

	got := make(chan Status, 1)
	done := make(chan struct{})
	go func() {
		Run(ctx, time.Hour, clock, func(s Status) { got <- s })
		close(done)
	}()

	assert.Equal(t, "6h 45m", (<-got).UntilIftar)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
