package brand

type Input struct {
	Description string `json:"description" validate:"notblank"`
}

type Patch struct {
	Description *string `json:"description,omitempty" validate:"omitnil,notblank"`
}

type RepInput struct {
	PersonID int64  `json:"person_id" validate:"gt=0"`
	BrandID  int64  `json:"brand_id" validate:"gt=0"`
	Notes    string `json:"notes"`
	IsActive bool   `json:"is_active"`
}

type RepPatch struct {
	PersonID *int64  `json:"person_id,omitempty" validate:"omitnil,gt=0"`
	BrandID  *int64  `json:"brand_id,omitempty" validate:"omitnil,gt=0"`
	Notes    *string `json:"notes,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
