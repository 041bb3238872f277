package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Comparison operations understood by filter clauses
const (
	OpEquals              = "Equals"
	OpNotEquals           = "NotEquals"
	OpLessThan            = "LessThan"
	OpLessThanOrEquals    = "LessThanOrEquals"
	OpGreaterThan         = "GreaterThan"
	OpGreaterThanOrEquals = "GreaterThanOrEquals"
	OpContains            = "Contains"
	OpStartsWith          = "StartsWith"
	OpIsNull              = "IsNull"
	OpIsNotNull           = "IsNotNull"
)

// notificationBSONFields maps client-facing attribute names onto the stored
// field names
var notificationBSONFields = map[string]string{
	"ID":                 "_id",
	"Time":               "time",
	"Read":               "read",
	"Action":             "action",
	"SenderID":           "senderId",
	"SenderName":         "senderName",
	"RecipientID":        "recipientId",
	"ServiceName":        "serviceName",
	"ObjectName":         "objectName",
	"SystemID":           "systemId",
	"RepositoryID":       "repositoryId",
	"RepositoryEntityID": "repositoryEntityId",
	"ObjectID":           "objectId",
	"Title":              "title",
	"Status":             "status",
	"PreviousStatus":     "previousStatus",
}

// Filter is a boolean expression tree over record attributes
type Filter interface {
	// ToBSON renders the expression as a mongo filter document
	ToBSON() bson.M
	// ToClientDocument echoes the expression in its client-displayable form
	ToClientDocument() Document
}

// FilterGroup combines child expressions with And / Or
type FilterGroup struct {
	Operator string
	Children []Filter
}

// FilterClause compares one attribute against a value
type FilterClause struct {
	Attribute string
	Operation string
	Value     interface{}
}

// NewAndFilter - an empty conjunction, the default filter
func NewAndFilter(children ...Filter) *FilterGroup {
	return &FilterGroup{Operator: "And", Children: children}
}

// FilterFromDocument parses a client-supplied filter description. A nil or
// unrecognized document yields an empty And group.
func FilterFromDocument(doc Document) Filter {
	if doc == nil {
		return NewAndFilter()
	}
	if attribute := doc.GetString("Attribute"); attribute != "" {
		operation := doc.GetString("Operation")
		if operation == "" {
			operation = OpEquals
		}
		return &FilterClause{Attribute: attribute, Operation: operation, Value: doc["Value"]}
	}
	group := &FilterGroup{Operator: doc.GetString("Operator")}
	if group.Operator != "Or" {
		group.Operator = "And"
	}
	if children, ok := doc["Children"].([]interface{}); ok {
		for _, child := range children {
			childDoc, ok := child.(map[string]interface{})
			if !ok {
				continue
			}
			group.Children = append(group.Children, FilterFromDocument(Document(childDoc)))
		}
	}
	return group
}

func (g *FilterGroup) ToBSON() bson.M {
	if len(g.Children) == 0 {
		return bson.M{}
	}
	children := make([]bson.M, 0, len(g.Children))
	for _, child := range g.Children {
		children = append(children, child.ToBSON())
	}
	if g.Operator == "Or" {
		return bson.M{"$or": children}
	}
	return bson.M{"$and": children}
}

func (g *FilterGroup) ToClientDocument() Document {
	children := make([]interface{}, 0, len(g.Children))
	for _, child := range g.Children {
		children = append(children, map[string]interface{}(child.ToClientDocument()))
	}
	return Document{"Operator": g.Operator, "Children": children}
}

func (c *FilterClause) ToBSON() bson.M {
	field, ok := notificationBSONFields[c.Attribute]
	if !ok {
		field = c.Attribute
	}
	switch c.Operation {
	case OpNotEquals:
		return bson.M{field: bson.M{"$ne": c.Value}}
	case OpLessThan:
		return bson.M{field: bson.M{"$lt": c.Value}}
	case OpLessThanOrEquals:
		return bson.M{field: bson.M{"$lte": c.Value}}
	case OpGreaterThan:
		return bson.M{field: bson.M{"$gt": c.Value}}
	case OpGreaterThanOrEquals:
		return bson.M{field: bson.M{"$gte": c.Value}}
	case OpContains:
		return bson.M{field: bson.M{"$regex": fmt.Sprint(c.Value)}}
	case OpStartsWith:
		return bson.M{field: bson.M{"$regex": "^" + fmt.Sprint(c.Value)}}
	case OpIsNull:
		return bson.M{field: nil}
	case OpIsNotNull:
		return bson.M{field: bson.M{"$ne": nil}}
	default:
		return bson.M{field: c.Value}
	}
}

func (c *FilterClause) ToClientDocument() Document {
	return Document{"Attribute": c.Attribute, "Operation": c.Operation, "Value": c.Value}
}

// ScopeToRecipient rewrites a filter so it always constrains RecipientID to
// the caller: an existing RecipientID clause has its value overwritten,
// otherwise an equality clause is injected at the root. The returned filter
// is always recipient-scoped regardless of what the client supplied.
func ScopeToRecipient(filter Filter, userID string) Filter {
	if clause := findRecipientClause(filter); clause != nil {
		clause.Operation = OpEquals
		clause.Value = userID
		return filter
	}
	scope := &FilterClause{Attribute: "RecipientID", Operation: OpEquals, Value: userID}
	if group, ok := filter.(*FilterGroup); ok && group.Operator == "And" {
		group.Children = append(group.Children, scope)
		return group
	}
	return NewAndFilter(filter, scope)
}

func findRecipientClause(filter Filter) *FilterClause {
	switch f := filter.(type) {
	case *FilterClause:
		if f.Attribute == "RecipientID" {
			return f
		}
	case *FilterGroup:
		for _, child := range f.Children {
			if clause := findRecipientClause(child); clause != nil {
				return clause
			}
		}
	}
	return nil
}
