package model

import "go.mongodb.org/mongo-driver/bson"

// Sort orders results by one attribute
type Sort struct {
	Attribute  string
	Descending bool
}

// SortByTimeDescending - the only ordering search ever applies
func SortByTimeDescending() Sort {
	return Sort{Attribute: "Time", Descending: true}
}

func (s Sort) ToBSON() bson.D {
	field, ok := notificationBSONFields[s.Attribute]
	if !ok {
		field = s.Attribute
	}
	direction := 1
	if s.Descending {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}

func (s Sort) ToClientDocument() Document {
	mode := "Ascending"
	if s.Descending {
		mode = "Descending"
	}
	return Document{"Attribute": s.Attribute, "Mode": mode}
}
