package util

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewUUID - a fresh record identifier, hex form without dashes
func NewUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// ID a unique identifier
type ID []byte

// NewID generate a new ID
func NewID() ID {
	ret := make(ID, 20)
	if _, err := rand.Read(ret); err != nil {
		panic(err)
	}
	return ret
}

// Recover - recover from panic in the current goroutine and log it
func Recover() {
	if r := recover(); r != nil {
		logrus.Errorf("recovered from panic: %v", r)
	}
}

// RecoverGoroutinePanic - recover from panic and forward it as an error when a
// channel is supplied
func RecoverGoroutinePanic(errChan chan<- error) {
	if r := recover(); r != nil {
		logrus.Errorf("recovered from goroutine panic: %v", r)
		if errChan != nil {
			errChan <- fmt.Errorf("panic: %v", r)
		}
	}
}

// PrettyPrint - dump a value as indented JSON on stdout
func PrettyPrint(data interface{}) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Println(data)
		return
	}
	fmt.Println(string(b))
}

// SetResponse - the generic data/status/message response envelope
func SetResponse(data interface{}, status int, message string) map[string]interface{} {
	response := make(map[string]interface{})
	response["data"] = nil
	if data != nil {
		response["data"] = data
	}
	response["status"] = status
	response["message"] = message
	return response
}
