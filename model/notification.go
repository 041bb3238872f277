package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/TestingSDK2/notify-backend/util"
)

// Action - kind of the action that triggered a notification
type Action string

const (
	ActionCreate Action = "Create"
	ActionUpdate Action = "Update"
	ActionDelete Action = "Delete"
)

// ApprovalStatus - approval state of the originating object
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
	StatusArchived ApprovalStatus = "Archived"
)

// Notification a single per-recipient notification record
type Notification struct {
	ID                 string         `json:"ID" bson:"_id"`
	Time               time.Time      `json:"Time" bson:"time"`
	Read               bool           `json:"Read" bson:"read"`
	Action             Action         `json:"Action" bson:"action"`
	SenderID           string         `json:"SenderID" bson:"senderId"`
	SenderName         string         `json:"SenderName" bson:"senderName"`
	RecipientID        string         `json:"RecipientID" bson:"recipientId"`
	ServiceName        string         `json:"ServiceName" bson:"serviceName"`
	ObjectName         string         `json:"ObjectName" bson:"objectName"`
	SystemID           string         `json:"SystemID,omitempty" bson:"systemId,omitempty"`
	RepositoryID       string         `json:"RepositoryID,omitempty" bson:"repositoryId,omitempty"`
	RepositoryEntityID string         `json:"RepositoryEntityID,omitempty" bson:"repositoryEntityId,omitempty"`
	ObjectID           string         `json:"ObjectID,omitempty" bson:"objectId,omitempty"`
	Title              string         `json:"Title,omitempty" bson:"title,omitempty"`
	Status             ApprovalStatus `json:"Status" bson:"status"`
	PreviousStatus     ApprovalStatus `json:"PreviousStatus" bson:"previousStatus"`
	Additionals        Document       `json:"Additionals,omitempty" bson:"additionals,omitempty"`
}

// NewNotification - a record with server-assigned identity and defaults
func NewNotification() *Notification {
	return &Notification{
		ID:             util.NewUUID(),
		Time:           time.Now(),
		Action:         ActionUpdate,
		Status:         StatusPending,
		PreviousStatus: StatusPending,
	}
}

// privilegedFields are server-assigned and must never be accepted from input
var privilegedFields = map[string]struct{}{
	"Privileges":     {},
	"Created":        {},
	"CreatedID":      {},
	"LastModified":   {},
	"LastModifiedID": {},
}

// notificationInput is the staging shape an untrusted body is decoded into;
// only the fields listed here ever reach the entity
type notificationInput struct {
	Action             Action         `json:"Action"`
	SenderID           string         `json:"SenderID"`
	SenderName         string         `json:"SenderName"`
	RecipientID        string         `json:"RecipientID"`
	ServiceName        string         `json:"ServiceName"`
	ObjectName         string         `json:"ObjectName"`
	SystemID           string         `json:"SystemID"`
	RepositoryID       string         `json:"RepositoryID"`
	RepositoryEntityID string         `json:"RepositoryEntityID"`
	ObjectID           string         `json:"ObjectID"`
	Title              string         `json:"Title"`
	Status             ApprovalStatus `json:"Status"`
	PreviousStatus     ApprovalStatus `json:"PreviousStatus"`
	Additionals        Document       `json:"Additionals"`
}

// NotificationFromDocument builds a record from an untrusted body. The body is
// filtered against the privileged-field deny list, decoded into a staging
// structure and copied field by field onto a fresh entity, so arbitrary input
// keys can never land on the record.
func NotificationFromDocument(body Document) (*Notification, error) {
	filtered := make(Document, len(body))
	for key, value := range body {
		if _, privileged := privilegedFields[key]; privileged {
			continue
		}
		filtered[key] = value
	}

	raw, err := json.Marshal(filtered)
	if err != nil {
		return nil, &InvalidRequestError{Message: "malformed request body"}
	}
	input := &notificationInput{}
	if err := json.Unmarshal(raw, input); err != nil {
		return nil, &InvalidRequestError{Message: "malformed request body"}
	}

	notification := NewNotification()
	if input.Action != "" {
		notification.Action = input.Action
	}
	notification.SenderID = input.SenderID
	notification.SenderName = input.SenderName
	notification.RecipientID = input.RecipientID
	notification.ServiceName = input.ServiceName
	notification.ObjectName = input.ObjectName
	notification.SystemID = input.SystemID
	notification.RepositoryID = input.RepositoryID
	notification.RepositoryEntityID = input.RepositoryEntityID
	notification.ObjectID = input.ObjectID
	notification.Title = input.Title
	if input.Status != "" {
		notification.Status = input.Status
	}
	if input.PreviousStatus != "" {
		notification.PreviousStatus = input.PreviousStatus
	}
	notification.Additionals = input.Additionals

	if err := notification.Validate(); err != nil {
		return nil, err
	}
	return notification, nil
}

// Validate enforces required fields and bounded lengths
func (n *Notification) Validate() error {
	required := map[string]string{
		"SenderID":    n.SenderID,
		"SenderName":  n.SenderName,
		"ServiceName": n.ServiceName,
		"ObjectName":  n.ObjectName,
	}
	for name, value := range required {
		if value == "" {
			return &InvalidRequestError{Message: fmt.Sprintf("%s is required", name)}
		}
	}
	bounded := map[string]struct {
		value string
		max   int
	}{
		"SenderID":           {n.SenderID, 32},
		"SenderName":         {n.SenderName, 250},
		"RecipientID":        {n.RecipientID, 32},
		"ServiceName":        {n.ServiceName, 50},
		"ObjectName":         {n.ObjectName, 50},
		"SystemID":           {n.SystemID, 32},
		"RepositoryID":       {n.RepositoryID, 32},
		"RepositoryEntityID": {n.RepositoryEntityID, 32},
		"ObjectID":           {n.ObjectID, 32},
		"Title":              {n.Title, 250},
	}
	for name, field := range bounded {
		if len(field.value) > field.max {
			return &InvalidRequestError{Message: fmt.Sprintf("%s exceeds %d characters", name, field.max)}
		}
	}
	return nil
}

// ToDocument - the serialized generic form used for responses and pushes
func (n *Notification) ToDocument() Document {
	doc := Document{
		"ID":             n.ID,
		"Time":           n.Time.Format(time.RFC3339Nano),
		"Read":           n.Read,
		"Action":         string(n.Action),
		"SenderID":       n.SenderID,
		"SenderName":     n.SenderName,
		"RecipientID":    n.RecipientID,
		"ServiceName":    n.ServiceName,
		"ObjectName":     n.ObjectName,
		"Status":         string(n.Status),
		"PreviousStatus": string(n.PreviousStatus),
	}
	optional := map[string]string{
		"SystemID":           n.SystemID,
		"RepositoryID":       n.RepositoryID,
		"RepositoryEntityID": n.RepositoryEntityID,
		"ObjectID":           n.ObjectID,
		"Title":              n.Title,
	}
	for key, value := range optional {
		if value != "" {
			doc[key] = value
		}
	}
	if n.Additionals != nil {
		doc["Additionals"] = n.Additionals
	}
	return doc
}
