package models

import "time"

// ValidityUnit is the unit of a requisite's validity period.
type ValidityUnit string

const (
	UnitDay   ValidityUnit = "DAY"
	UnitMonth ValidityUnit = "MONTH"
	UnitYear  ValidityUnit = "YEAR"
)

func (u ValidityUnit) Valid() bool {
	switch u {
	case UnitDay, UnitMonth, UnitYear:
		return true
	}
	return false
}

// Requisite is a named document requirement. Validity fields are only
// meaningful when IsValidityRequired is set.
type Requisite struct {
	ID                 string       `bson:"_id,omitempty" json:"id"`
	Name               string       `bson:"name" json:"name"`
	Format             string       `bson:"format,omitempty" json:"format,omitempty"`
	Description        string       `bson:"description,omitempty" json:"description,omitempty"`
	IsValidityRequired bool         `bson:"isValidityRequired" json:"isValidityRequired"`
	ValidityValue      int          `bson:"validityValue" json:"validityValue"`
	ValidityUnit       ValidityUnit `bson:"validityUnit" json:"validityUnit"`
	IsActive           bool         `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updatedAt" json:"updatedAt"`
}
