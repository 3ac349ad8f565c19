package auth

import "talentcrm/internal/domain/people"

// PersonInput is the person half of a registration.
type PersonInput = people.Input

type registration struct {
	Person   PersonInput `json:"person"`
	Username string      `json:"username" validate:"notblank"`
	Password string      `json:"password" validate:"notblank"`
}
