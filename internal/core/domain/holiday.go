package domain

import "time"

// Holiday is a non-business day used for submission deadlines.
type Holiday struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}
