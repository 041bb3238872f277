package main

import (
	"time"

	"github.com/TestingSDK2/notify-backend/cmd"
	"github.com/TestingSDK2/notify-backend/util"
)

func main() {
	data := map[string]interface{}{
		"startTime": time.Now().Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":   "Starting notify backend server . . .",
		"repo":      "notify-backend",
	}
	util.PrettyPrint(data)
	cmd.New().Execute()
}
