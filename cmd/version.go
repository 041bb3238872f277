package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the build, set via ldflags
var Version = "dev"

// NewVersionCommand - prints the build version
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version of the notify backend",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
}
