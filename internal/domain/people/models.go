package people

import "talentcrm/internal/model"

type Input struct {
	FirstName   string `json:"first_name" validate:"notblank"`
	LastName    string `json:"last_name" validate:"notblank"`
	FullName    string `json:"full_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"omitempty,emailaddr"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// Person builds the record; a blank full name is derived from first and
// last name.
func (in Input) Person() model.Person {
	full := in.FullName
	if full == "" {
		full = in.FirstName + " " + in.LastName
	}
	return model.Person{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		FullName:    full,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Zip:         in.Zip,
	}
}

type Patch struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitnil,notblank"`
	LastName    *string `json:"last_name,omitempty" validate:"omitnil,notblank"`
	FullName    *string `json:"full_name,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,emailaddr"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Zip         *string `json:"zip,omitempty"`
}
