package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	searchCategory string
	searchTier     string
	searchType     string
	searchText     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stat blocks",
	Long:  `Search filters stat blocks by category, tier, type and free text. Unset filters match everything.`,
	RunE:  runSearch,
}

var typesCmd = &cobra.Command{
	Use:   "types <category>",
	Short: "List the types of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypes,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List every category with its types and the tiers",
	RunE:  runCategories,
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Category to match")
	searchCmd.Flags().StringVar(&searchTier, "tier", "", "Tier to match")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Type to match")
	searchCmd.Flags().StringVar(&searchText, "text", "", "Text to look for")
}

func runSearch(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{
		"category": searchCategory,
		"tier":     searchTier,
		"type":     searchType,
		"text":     searchText,
	})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.SearchStatblocks(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	results := resp.GetFields()["results"].GetListValue().GetValues()
	fmt.Printf("Found %d stat blocks\n\n", len(results))
	for _, result := range results {
		fields := result.GetStructValue().GetFields()
		fmt.Printf("- %s (Tier %s %s %s)\n",
			fields["name"].GetStringValue(),
			fields["tier"].GetStringValue(),
			fields["type"].GetStringValue(),
			fields["category"].GetStringValue(),
		)
		if desc := fields["description"].GetStringValue(); desc != "" {
			fmt.Printf("  %s\n", desc)
		}
	}
	return nil
}

func runTypes(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListTypes(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return fmt.Errorf("failed to list types: %w", err)
	}

	for _, t := range resp.GetFields()["types"].GetListValue().GetValues() {
		fmt.Println(t.GetStringValue())
	}
	return nil
}

func runCategories(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListCategories(ctx, &emptypb.Empty{})
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return printJSON(resp)
}
