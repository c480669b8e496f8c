package models

import "time"

// Profile groups the requisites a job profile demands.
type Profile struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	RequisiteIDs []string  `bson:"requisiteIds" json:"requisiteIds"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Hiring is an employment type (fixed-term, contractor, ...) with its own
// requisite set.
type Hiring struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Type         string    `bson:"type" json:"type"`
	RequisiteIDs []string  `bson:"requisiteIds" json:"requisiteIds"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Group struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Location is a tower+floor pair where a service operates.
type Location struct {
	Tower string `bson:"tower" json:"tower"`
	Floor string `bson:"floor" json:"floor"`
}

// Service is a business service a user can be assigned to. Profiles lists
// the profile names allowed to take the service; a user's profile must be
// common to every service they take.
type Service struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Code         int        `bson:"code,omitempty" json:"code,omitempty"`
	CostCenter   string     `bson:"costCenter,omitempty" json:"costCenter,omitempty"`
	GroupName    string     `bson:"groupName" json:"groupName"`
	Profiles     []string   `bson:"profiles" json:"profiles"`
	RequisiteIDs []string   `bson:"requisiteIds" json:"requisiteIds"`
	Locations    []Location `bson:"locations,omitempty" json:"locations,omitempty"`
	IsActive     bool       `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}
