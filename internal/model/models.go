// Package model holds the flat records stored in the CRM document. JSON tags
// match the serialized field names exactly.
package model

const (
	RoleUser     = "User"
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
	RoleClient   = "Client"
	RoleRep      = "Rep"
)

const (
	ContractSent     = "Sent"
	ContractPending  = "Pending"
	ContractAccepted = "Accepted"
	ContractRejected = "Rejected"
)

// Record is implemented by every stored entity.
type Record interface {
	Collection() string
	IDField() string
	RecordID() int64
}

type Role struct {
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name"`
}

type Person struct {
	PersonID    int64  `json:"person_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// User.PersonID is zero when the account has no person attached.
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
	PersonID int64  `json:"person_id"`
}

// Employee.ManagerID is zero for employees without a manager.
type Employee struct {
	EmployeeID int64   `json:"employee_id"`
	PersonID   int64   `json:"person_id"`
	Position   string  `json:"position"`
	Title      string  `json:"title"`
	ManagerID  int64   `json:"manager_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
	IsActive   bool    `json:"is_active"`
	IsManager  bool    `json:"is_manager"`
}

type Client struct {
	ClientID    int64  `json:"client_id"`
	EmployeeID  int64  `json:"employee_id"`
	Description string `json:"description"`
}

type SocialMediaAccount struct {
	SocialMediaID int64  `json:"social_media_id"`
	ClientID      int64  `json:"client_id"`
	AccountType   string `json:"account_type"`
	Link          string `json:"link"`
}

type Brand struct {
	BrandID     int64  `json:"brand_id"`
	Description string `json:"description"`
}

type BrandRepresentative struct {
	BrandRepID int64  `json:"brand_rep_id"`
	PersonID   int64  `json:"person_id"`
	BrandID    int64  `json:"brand_id"`
	Notes      string `json:"notes"`
	IsActive   bool   `json:"is_active"`
}

type Deal struct {
	DealID       int64  `json:"deal_id"`
	ClientID     int64  `json:"client_id"`
	BrandID      int64  `json:"brand_id"`
	BrandRepID   int64  `json:"brand_rep_id"`
	PitchDate    string `json:"pitch_date"`
	IsActive     bool   `json:"is_active"`
	IsSuccessful bool   `json:"is_successful"`
}

type Contract struct {
	ContractID       int64   `json:"contract_id"`
	DealID           int64   `json:"deal_id"`
	Details          string  `json:"details"`
	Payment          float64 `json:"payment"`
	AgencyPercentage float64 `json:"agency_percentage"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Status           string  `json:"status"`
	IsApproved       bool    `json:"is_approved"`
}
