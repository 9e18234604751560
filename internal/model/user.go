package model

type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Ctime        int64   `json:"createdAt"`
	Mtime        int64   `json:"updatedAt"`
}

// Identity is the authenticated caller. It doubles as the public profile
// projection of a User and never carries the password hash.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// UserPatch holds the profile fields to change; nil means keep.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil
}
