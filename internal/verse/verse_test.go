package verse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForDayRotates(t *testing.T) {
	jan1 := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Quran 65:2", ForDay(jan1).Source)
	assert.Equal(t, "Quran 8:45", ForDay(jan1.AddDate(0, 0, 1)).Source)
	assert.Equal(t, "Quran 2:201", ForDay(jan1.AddDate(0, 0, 4)).Source)
	assert.Equal(t, "Quran 65:2", ForDay(jan1.AddDate(0, 0, 5)).Source)
}
