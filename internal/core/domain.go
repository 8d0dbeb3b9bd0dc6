package core

// Principal represents the authenticated identity of the caller.
// It is produced by the token codec after verifying a bearer token and
// lives for exactly one request.
type Principal struct {
	// ID is the unique subject identifier (the user's document id).
	ID string `mapstructure:"id"`

	// Username is the login name the token was issued for.
	Username string `mapstructure:"username"`

	// Claims are the remaining claims carried by the verified token.
	Claims map[string]any `mapstructure:",remain"`
}

// User is a stored account. Password always holds the bcrypt digest,
// never the plaintext.
type User struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Username    string `json:"username" bson:"username"`
	Password    string `json:"-" bson:"password"`
	Name        string `json:"name" bson:"name"`
	EmailID     string `json:"email_id" bson:"email_id"`
	DateOfBirth string `json:"date_of_birth" bson:"date_of_birth"`
	IsDeleted   bool   `json:"-" bson:"is_deleted"`
	CreatedAt   int64  `json:"-" bson:"created_at"`
	UpdatedAt   int64  `json:"-" bson:"updated_at"`
}

// UserUpdate carries the profile fields a user may change.
// The password is deliberately not updatable through this path.
type UserUpdate struct {
	Username    string `json:"username" bson:"username"`
	Name        string `json:"name" bson:"name"`
	EmailID     string `json:"email_id" bson:"email_id"`
	DateOfBirth string `json:"date_of_birth" bson:"date_of_birth"`
}

// Credential is a stored vault entry owned by a single user.
type Credential struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	UserID    string `json:"-" bson:"user_id"`
	Title     string `json:"title" bson:"title"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"password" bson:"password"`
	URL       string `json:"url" bson:"url"`
	Notes     string `json:"notes" bson:"notes"`
	IsDeleted bool   `json:"-" bson:"is_deleted"`
	CreatedAt int64  `json:"-" bson:"created_at"`
	UpdatedAt int64  `json:"-" bson:"updated_at"`
}

// CredentialUpdate carries the updatable fields of a vault entry.
type CredentialUpdate struct {
	Title    string `json:"title" bson:"title"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
	URL      string `json:"url" bson:"url"`
	Notes    string `json:"notes" bson:"notes"`
}

// ListOptions controls sorting and exact-match filtering for user listings.
type ListOptions struct {
	SortBy     string
	Descending bool
	Filters    map[string]string
}
