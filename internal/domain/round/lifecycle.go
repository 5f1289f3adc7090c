package round

// ValidateTransition validates a requested lifecycle transition. Transitions
// are strictly forward; no status is ever revisited.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusPending:
		if to == StatusOpen || to == StatusCancelled {
			valid = true
		}
	case StatusOpen:
		if to == StatusClosed || to == StatusCancelled {
			valid = true
		}
	case StatusClosed:
		if to == StatusCalculated {
			valid = true
		}
	case StatusCalculated:
		if to == StatusDistributed {
			valid = true
		}
	}

	if !valid {
		switch {
		case to == StatusCalculated && (from == StatusCalculated || from == StatusDistributed):
			return ErrAlreadyFinalized
		case to == StatusDistributed && from == StatusDistributed:
			return ErrAlreadyDistributed
		}
		return ErrInvalidState
	}
	return nil
}
