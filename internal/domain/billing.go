package domain

import (
	"strings"
	"time"
)

// BillingDetails are the five required checkout fields. Validation is a pure
// presence check; no format validation is applied to email or phone.
type BillingDetails struct {
	FirstName     string    `bson:"first_name" json:"firstName"`
	StreetAddress string    `bson:"street_address" json:"streetAddress"`
	TownCity      string    `bson:"town_city" json:"town_city"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email" json:"email"`
	CreatedAt     time.Time `bson:"created_at" json:"-"`
}

// MissingFields reports which required fields are empty after trimming.
func (b *BillingDetails) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", b.FirstName},
		{"streetAddress", b.StreetAddress},
		{"town_city", b.TownCity},
		{"phone", b.Phone},
		{"email", b.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
}
