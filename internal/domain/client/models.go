package client

type Input struct {
	EmployeeID  int64  `json:"employee_id" validate:"gt=0"`
	Description string `json:"description" validate:"notblank"`
}

type Patch struct {
	EmployeeID  *int64  `json:"employee_id,omitempty" validate:"omitnil,gt=0"`
	Description *string `json:"description,omitempty" validate:"omitnil,notblank"`
}

type SocialInput struct {
	ClientID    int64  `json:"client_id" validate:"gt=0"`
	AccountType string `json:"account_type" validate:"notblank"`
	Link        string `json:"link" validate:"notblank"`
}
