package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Person holds the fields of a people document used by the arrest workflow
type Person struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PersonID  string             `json:"personID" bson:"personID"`
	FirstName string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Roles     []string           `json:"roles" bson:"roles"`
}

// Case holds the fields of a cases document used by the arrest workflow
type Case struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CaseID string             `json:"caseID" bson:"caseID"`
	Title  string             `json:"title,omitempty" bson:"title,omitempty"`
	Status string             `json:"status" bson:"status"`
}

// Location holds the fields of a locations document used by the arrest workflow
type Location struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LocationID string             `json:"locationID" bson:"locationID"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
}

// Arrest holds the structure for the arrests collection in mongo
type Arrest struct {
	ArrestID   string  `json:"arrestID" bson:"arrestID"`
	PersonID   string  `json:"personID" bson:"personID"`
	CaseID     string  `json:"caseID" bson:"caseID"`
	Date       string  `json:"date" bson:"date"` // Format: YYYY-MM-DD
	LocationID string  `json:"locationID" bson:"locationID"`
	OfficerID  *string `json:"officerID" bson:"officerID"`
}

// Charge holds the structure for the charges collection in mongo
type Charge struct {
	ChargeID    string `json:"chargeID" bson:"chargeID"`
	ArrestID    string `json:"arrestID" bson:"arrestID"`
	Description string `json:"description" bson:"description"`
	StatuteCode string `json:"statuteCode" bson:"statuteCode"`
	IsConvicted bool   `json:"isConvicted" bson:"isConvicted"`
}
