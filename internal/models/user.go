package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`                  // don’t expose hash
	Location     string `json:"location,omitempty"` // "" when unset
}

// ValidLocation reports whether loc is the location the user is bound to.
func (u User) ValidLocation(loc string) bool {
	return u.Location != "" && u.Location == loc
}
