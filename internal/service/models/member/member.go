package member

import (
	"database/sql/driver"
	"time"
)

type Status string

const (
	StatusActive            Status = "ACTIVE"
	StatusWithdrawRequested Status = "WITHDRAW_REQUESTED"
	StatusDeleted           Status = "DELETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Member is the collaborator snapshot the order saga consumes: identity,
// payment contact details, and the activity status gate.
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phoneNumber"`
	BirthDate    string    `json:"birthDate"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// IsActive reports whether the member may place orders.
func (m Member) IsActive() bool {
	return m.Status == StatusActive
}
