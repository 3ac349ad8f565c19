package deal

type Input struct {
	ClientID     int64  `json:"client_id" validate:"gt=0"`
	BrandID      int64  `json:"brand_id" validate:"gte=0"`
	BrandRepID   int64  `json:"brand_rep_id" validate:"gte=0"`
	PitchDate    string `json:"pitch_date" validate:"required,date"`
	IsActive     bool   `json:"is_active"`
	IsSuccessful bool   `json:"is_successful"`
}

type Patch struct {
	ClientID     *int64  `json:"client_id,omitempty" validate:"omitnil,gt=0"`
	BrandID      *int64  `json:"brand_id,omitempty" validate:"omitnil,gte=0"`
	BrandRepID   *int64  `json:"brand_rep_id,omitempty" validate:"omitnil,gte=0"`
	PitchDate    *string `json:"pitch_date,omitempty" validate:"omitnil,date"`
	IsActive     *bool   `json:"is_active,omitempty"`
	IsSuccessful *bool   `json:"is_successful,omitempty"`
}
