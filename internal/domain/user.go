package domain

import "time"

// User is server-owned; the password is stored only as a bcrypt hash.
type User struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Address      string    `bson:"address"`
	CreatedAt    time.Time `bson:"created_at"`
}

// UserProjection is the denormalized view returned at login and cached in the
// session store. It carries no freshness contract: stale until the next login
// or profile update.
type UserProjection struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

func (u *User) Projection() UserProjection {
	return UserProjection{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
	}
}
