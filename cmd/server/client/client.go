// Package client provides commands that call the stat block gRPC service
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/KirkDiggler/statblock-api/internal/handlers/statblock/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the stat block API",
	Long:  `Client commands call a running stat block server over gRPC.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(renderCmd)
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(saveCmd)
	ClientCmd.AddCommand(deleteCmd)
	ClientCmd.AddCommand(searchCmd)
	ClientCmd.AddCommand(typesCmd)
	ClientCmd.AddCommand(categoriesCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(rollsCmd)
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

// createStatblockClient creates a stat block service client
func createStatblockClient() (v1alpha1.StatblockServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewStatblockServiceClient(conn), cleanup, nil
}

// printJSON writes a message as indented JSON
func printJSON(m proto.Message) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
