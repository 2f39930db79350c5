// Package main runs the realm gRPC server and its operator commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/realm-api/cmd/server/client"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "realm-api",
	Short:        "Realm API gRPC server",
	Long:         `Realm API serves characters, guilds, the item market and the PvP arena of a browser RPG over gRPC.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serverCmd, auditCmd, client.ClientCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "realm-api: %v\n", err)
		os.Exit(1)
	}
}
