package models

// RootUsername is the reserved username of the seeded root admin
const RootUsername = "root"

// Admin represents a portal administrator account
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// IsRoot reports whether this admin is the seeded root account
func (a *Admin) IsRoot() bool {
	return a.Username == RootUsername
}
