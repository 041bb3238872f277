package model

// UserSession - one registered session/device of a user; IsOnline is the
// liveness flag checked before a push is attempted
type UserSession struct {
	SessionID string `json:"sessionID" db:"sessionID"`
	UserID    string `json:"userID" db:"userID"`
	DeviceID  string `json:"deviceID" db:"deviceID"`
	AppName   string `json:"appName" db:"appName"`
	IsOnline  bool   `json:"isOnline" db:"isOnline"`
}
