package models

// UserRecord is one account in the user store, keyed by username.
// Passwords are stored in plaintext to stay wire-compatible with the
// original store file; see the hazard note in DESIGN.md.
type UserRecord struct {
	Password       string                    `json:"password"`
	FullName       string                    `json:"full_name"`
	DOB            *string                   `json:"dob"`
	Email          string                    `json:"email"`
	AvatarPath     *string                   `json:"avatar_path"`
	MovieChecklist map[string]ChecklistEntry `json:"movie_checklist"`
	Notifications  []Notification            `json:"notifications"`
}

// ChecklistEntry is one movie on a user's watch checklist.
// WatchedDate is set when Watched flips to true and is not cleared on
// un-watch. UserRating is the 1-9 emoji scale, nil until the user rates.
type ChecklistEntry struct {
	Title       string   `json:"title"`
	Watched     bool     `json:"watched"`
	Poster      string   `json:"poster"`
	Rating      *float64 `json:"rating"`
	WatchedDate *string  `json:"watched_date,omitempty"`
	UserRating  *int     `json:"user_rating,omitempty"`
}

// Notification is a message delivered to a user, e.g. a shared checklist
// entry from a friend.
type Notification struct {
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer session token minted at login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// UpdateProfileRequest updates profile fields. Nil fields are left
// untouched; an explicit empty string is a valid update.
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	DOB        *string `json:"dob"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	AvatarPath *string `json:"avatar_path"`
}

// Profile is the user-visible view of a UserRecord (no password).
type Profile struct {
	Username       string                    `json:"username"`
	FullName       string                    `json:"full_name"`
	DOB            *string                   `json:"dob"`
	Email          string                    `json:"email"`
	AvatarPath     *string                   `json:"avatar_path"`
	MovieChecklist map[string]ChecklistEntry `json:"movie_checklist"`
	Unread         int                       `json:"unread_notifications"`
}

// AddChecklistRequest adds a movie to the caller's checklist.
type AddChecklistRequest struct {
	MovieID string   `json:"movie_id"`
	Title   string   `json:"title"`
	Poster  string   `json:"poster"`
	Rating  *float64 `json:"rating"`
}

// UpdateChecklistRequest flips the watched flag and/or sets the 1-9 user
// rating on an existing entry. Nil fields are left untouched.
type UpdateChecklistRequest struct {
	Watched    *bool `json:"watched"`
	UserRating *int  `json:"user_rating"`
}

// ShareRequest shares a checklist entry with another user.
type ShareRequest struct {
	To string `json:"to"`
}
