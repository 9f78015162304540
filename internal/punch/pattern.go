package punch

// DayState classifies one day's punch records.
type DayState string

const (
	StateNoEntry   DayState = "NO_ENTRY"
	StateEntryOnly DayState = "ENTRY_ONLY"
	StateComplete  DayState = "COMPLETE"
)

// StateForDay classifies the ordered punch records of a single day. Zero
// records is trivially NO_ENTRY.
func StateForDay(records []Punch) DayState {
	var hasEntrada, hasSalida bool
	for _, p := range records {
		switch p.Kind {
		case KindEntrada:
			hasEntrada = true
		case KindSalida:
			hasSalida = true
		}
	}

	switch {
	case !hasEntrada:
		return StateNoEntry
	case hasSalida:
		return StateComplete
	default:
		return StateEntryOnly
	}
}

// UnmatchedEntrada returns the entrada of the given day's records that has
// no matching salida, or nil. A shift left open like this must be resolved
// before the employee starts a new day's entrada, otherwise the prior
// day's shift is silently orphaned.
func UnmatchedEntrada(records []Punch) *Punch {
	var entrada *Punch
	hasSalida := false

	for i := range records {
		switch records[i].Kind {
		case KindEntrada:
			entrada = &records[i]
		case KindSalida:
			hasSalida = true
		}
	}

	if entrada != nil && !hasSalida {
		return entrada
	}
	return nil
}
