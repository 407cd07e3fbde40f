package booking

// Relation describes who the acting user is to a booking.
type Relation int

const (
	// RelationNone is any user who is neither the guest nor the hotel owner.
	RelationNone Relation = iota
	// RelationGuest is the user who created the booking.
	RelationGuest
	// RelationHotelOwner is the owner of the hotel the booking belongs to.
	RelationHotelOwner
)

// CanTransition decides whether the acting party may move a booking from one
// status to another. It is a pure function so the authorization rules can be
// tested without any storage:
//
//	pending   -> confirmed   hotel owner only
//	pending   -> cancelled   guest or hotel owner
//	confirmed -> cancelled   guest or hotel owner
//	cancelled -> anything    rejected, cancelled is terminal
func CanTransition(from, to Status, rel Relation) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}

	if from == StatusCancelled {
		return ErrAlreadyCancelled
	}

	switch {
	case from == StatusPending && to == StatusConfirmed:
		if rel != RelationHotelOwner {
			return ErrPermissionDenied
		}
		return nil

	case to == StatusCancelled:
		// pending -> cancelled and confirmed -> cancelled
		if rel != RelationGuest && rel != RelationHotelOwner {
			return ErrPermissionDenied
		}
		return nil

	default:
		// Covers no-op transitions and confirmed -> pending/confirmed.
		return ErrInvalidTransition
	}
}
