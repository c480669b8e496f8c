package models

import "time"

// IDDocument identifies a user by national document type + number. The pair
// is unique across users; the number is how reviewers address a user.
type IDDocument struct {
	Type   string `bson:"type" json:"type"`
	Number string `bson:"number" json:"number"`
}

// Account carries the stored credential for local login.
type Account struct {
	PasswordHash string `bson:"passwordHash" json:"-"`
}

type Address struct {
	State        string `bson:"state,omitempty" json:"state,omitempty"`
	Municipality string `bson:"municipality,omitempty" json:"municipality,omitempty"`
	Neighborhood string `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	Street       string `bson:"street,omitempty" json:"street,omitempty"`
	Observation  string `bson:"observation,omitempty" json:"observation,omitempty"`
}

// User is the aggregate root. Folder, documents and attachments are embedded
// and only addressable through the user.
type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	FirstName     string     `bson:"firstName" json:"firstName"`
	SecondName    string     `bson:"secondName,omitempty" json:"secondName,omitempty"`
	Surname       string     `bson:"surname" json:"surname"`
	SecondSurname string     `bson:"secondSurname,omitempty" json:"secondSurname,omitempty"`
	Email         string     `bson:"email" json:"email"`
	Birthdate     string     `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	IDDocument    IDDocument `bson:"idDocument" json:"idDocument"`
	Roles         []Role     `bson:"roles" json:"roles"`
	Account       Account    `bson:"account" json:"-"`
	Address       Address    `bson:"address,omitempty" json:"address,omitempty"`
	Folder        Folder     `bson:"folder" json:"folder"`
	IsActive      bool       `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the user's non-empty name parts.
func (u *User) FullName() string {
	out := u.FirstName
	for _, part := range []string{u.SecondName, u.Surname, u.SecondSurname} {
		if part != "" {
			out += " " + part
		}
	}
	return out
}
