package punch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func punchAt(kind string, hour int) Punch {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	return Punch{
		ID:        uuid.New(),
		PunchDate: day,
		Kind:      kind,
		PunchedAt: day.Add(time.Duration(hour) * time.Hour),
	}
}

func TestStateForDay(t *testing.T) {
	assert.Equal(t, StateNoEntry, StateForDay(nil))
	assert.Equal(t, StateNoEntry, StateForDay([]Punch{}))
	assert.Equal(t, StateEntryOnly, StateForDay([]Punch{punchAt(KindEntrada, 8)}))
	assert.Equal(t, StateComplete, StateForDay([]Punch{
		punchAt(KindEntrada, 8),
		punchAt(KindSalida, 17),
	}))
	// A salida without entrada is still NO_ENTRY: the day never started.
	assert.Equal(t, StateNoEntry, StateForDay([]Punch{punchAt(KindSalida, 17)}))
}

func TestUnmatchedEntrada(t *testing.T) {
	open := []Punch{punchAt(KindEntrada, 8)}
	got := UnmatchedEntrada(open)
	assert.NotNil(t, got)
	assert.Equal(t, KindEntrada, got.Kind)

	closed := []Punch{punchAt(KindEntrada, 8), punchAt(KindSalida, 17)}
	assert.Nil(t, UnmatchedEntrada(closed))

	assert.Nil(t, UnmatchedEntrada(nil))
}
