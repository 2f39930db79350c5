// Package client provides test commands for the realm gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	realmv1alpha1 "github.com/KirkDiggler/realm-api/internal/handlers/realm/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the realm API",
	Long:  `Client commands allow you to test the realm API by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(callCmd)

	// Character commands
	ClientCmd.AddCommand(createCharacterCmd)
	ClientCmd.AddCommand(getCharacterCmd)
	ClientCmd.AddCommand(chooseClassCmd)
	ClientCmd.AddCommand(grantExperienceCmd)

	// Market commands
	ClientCmd.AddCommand(listListingsCmd)
	ClientCmd.AddCommand(purchaseListingCmd)

	// Guild commands
	ClientCmd.AddCommand(getGuildCmd)
	ClientCmd.AddCommand(joinGuildCmd)

	// Arena commands
	ClientCmd.AddCommand(findOpponentsCmd)
}

var callData string

var callCmd = &cobra.Command{
	Use:   "call <method>",
	Short: "Call any realm RPC with a JSON body",
	Long: `Call sends --data as the request object of the named RPC, for example:

  realm-api client call Contribute --data '{"character_id":"chr_1","guild_id":"gld_1","amount":50}'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: realmv1alpha1.MethodNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{}
		if callData != "" {
			if err := json.Unmarshal([]byte(callData), &body); err != nil {
				return fmt.Errorf("--data must be a JSON object: %w", err)
			}
		}
		return invoke(cmd.OutOrStdout(), args[0], body)
	},
}

func init() {
	callCmd.Flags().StringVar(&callData, "data", "", "JSON request object")
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// invoke calls method on the server and prints the response as JSON
func invoke(w io.Writer, method string, body map[string]any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := realmv1alpha1.Invoke(ctx, conn, method, body)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	return printJSON(w, resp)
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
