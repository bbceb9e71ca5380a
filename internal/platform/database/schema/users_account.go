package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	IsSuperuser string
	IsStaff     string
	CreatedAt   string
	UpdatedAt   string

	// Named unique constraints, used to tell "username taken"
	// apart from "email taken" at signup.
	UniqueUsername string
	UniqueEmail    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	FirstName:   "first_name",
	LastName:    "last_name",
	Bio:         "bio",
	Role:        "role",
	IsSuperuser: "is_superuser",
	IsStaff:     "is_staff",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",

	UniqueUsername: "account_username_key",
	UniqueEmail:    "account_email_key",
}
