package model

// User is the identity record resolved through the directory collaborator.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserRole carries the organizational attributes of a user needed by the
// document lifecycle: which company they belong to and whether they act as a
// success manager across companies.
type UserRole struct {
	UserID           string `json:"user_id"`
	CompanyID        string `json:"company_id"`
	IsSuccessManager bool   `json:"is_success_manager"`
}
