package domain

// User represents a landlord account in the shared credentials database
type User struct {
	ID           int64  // Autoincrement row id
	Username     string // Unique username, also selects the per-user database file
	PasswordHash string // Bcrypt hashed password (never returned in API)
	Email        string
	Role         string // "admin" or "user"
}

// UserRepository defines data access for accounts in the credentials database
type UserRepository interface {
	Create(user *User) error
	GetByUsername(username string) (*User, error)
	UpdatePassword(username, passwordHash string) error
	UpdateEmail(username, email string) error
	UsernameExists(username string) (bool, error)
}
