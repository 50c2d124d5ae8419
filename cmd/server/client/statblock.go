package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/statblock-api/internal/handlers/statblock/v1alpha1"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get a stat block by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var renderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Print a stat block as formatted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print the normalized export of a stat block",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var saveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Save a stat block from a JSON file",
	Long:  `Save reads one stat block record from a JSON file. A record with the same name is replaced.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stat block by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runGet(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetStatblock(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return fmt.Errorf("failed to get stat block: %w", err)
	}
	return printJSON(resp)
}

func runRender(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.RenderStatblock(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return fmt.Errorf("failed to render stat block: %w", err)
	}
	fmt.Print(resp.GetValue())
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ExportStatblock(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return fmt.Errorf("failed to export stat block: %w", err)
	}
	fmt.Println(resp.GetValue())
	return nil
}

func runSave(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	req, err := v1alpha1.StructFromJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.SaveStatblock(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to save stat block: %w", err)
	}

	if resp.GetFields()["replaced"].GetBoolValue() {
		fmt.Println("Stat block replaced")
	} else {
		fmt.Println("Stat block saved")
	}
	return nil
}

func runDelete(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.DeleteStatblock(ctx, wrapperspb.String(args[0])); err != nil {
		return fmt.Errorf("failed to delete stat block: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
