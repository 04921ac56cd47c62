package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// ClaimsTables reports whether reservations in this status hold their tables.
func (s Status) ClaimsTables() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ClaimingStatuses is the status filter used when collecting claimed tables.
var ClaimingStatuses = []Status{StatusPending, StatusConfirmed}

const SourceApp = "app"
