package models

import "time"

// RecentUsername is one entry of the public recently-registered-names list.
// The list is a single shared record; entries carry the display name and the
// instant it was last pushed.
type RecentUsername struct {
	Name   string    `json:"name"`
	SeenAt time.Time `json:"ts"`
}
