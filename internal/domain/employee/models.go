package employee

import "talentcrm/internal/model"

type Input struct {
	PersonID  int64   `json:"person_id" validate:"gt=0"`
	Position  string  `json:"position" validate:"notblank"`
	Title     string  `json:"title"`
	ManagerID int64   `json:"manager_id" validate:"gte=0"`
	StartDate string  `json:"start_date" validate:"required,date"`
	EndDate   *string `json:"end_date" validate:"omitempty,date"`
	IsActive  bool    `json:"is_active"`
	IsManager bool    `json:"is_manager"`
}

func (in Input) employee() model.Employee {
	return model.Employee{
		PersonID:  in.PersonID,
		Position:  in.Position,
		Title:     in.Title,
		ManagerID: in.ManagerID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsActive:  in.IsActive,
		IsManager: in.IsManager,
	}
}

// Patch sets only its non-nil fields. ClearEndDate stores a null end date.
type Patch struct {
	PersonID     *int64  `json:"person_id,omitempty" validate:"omitnil,gt=0"`
	Position     *string `json:"position,omitempty" validate:"omitnil,notblank"`
	Title        *string `json:"title,omitempty"`
	ManagerID    *int64  `json:"manager_id,omitempty" validate:"omitnil,gte=0"`
	StartDate    *string `json:"start_date,omitempty" validate:"omitnil,date"`
	EndDate      *string `json:"end_date,omitempty" validate:"omitnil,date"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsManager    *bool   `json:"is_manager,omitempty"`
	ClearEndDate bool    `json:"-"`
}
