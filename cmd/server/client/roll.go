package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var rollCmd = &cobra.Command{
	Use:   "roll <adversary>",
	Short: "Roll an adversary's attack and damage",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoll,
}

func runRoll(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.RollAttack(ctx, wrapperspb.String(args[0]))
	if err != nil {
		return fmt.Errorf("failed to roll attack: %w", err)
	}

	fields := resp.GetFields()
	fmt.Printf("🎲 %s attacks with %s\n\n", fields["name"].GetStringValue(), fields["weapon"].GetStringValue())
	printRoll("Attack", fields["attack"].GetStructValue())
	printRoll("Damage", fields["damage"].GetStructValue())
	if dt := fields["damage_type"].GetStringValue(); dt != "" {
		fmt.Printf("Damage type: %s\n", dt)
	}
	return nil
}

func printRoll(label string, roll *structpb.Struct) {
	fields := roll.GetFields()

	var dice []int
	for _, v := range fields["dice"].GetListValue().GetValues() {
		dice = append(dice, int(v.GetNumberValue()))
	}
	fmt.Printf("%s: %s = %d %v\n",
		label,
		fields["notation"].GetStringValue(),
		int(fields["total"].GetNumberValue()),
		dice,
	)
}

var rollsLimit int

var rollsCmd = &cobra.Command{
	Use:   "rolls <adversary>",
	Short: "List an adversary's recent attack rolls",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolls,
}

func init() {
	rollsCmd.Flags().IntVar(&rollsLimit, "limit", 0, "Maximum rolls to show (0 for all kept)")
}

func runRolls(_ *cobra.Command, args []string) error {
	client, cleanup, err := createStatblockClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"name": args[0], "limit": rollsLimit})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.ListRolls(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list rolls: %w", err)
	}

	rolls := resp.GetFields()["rolls"].GetListValue().GetValues()
	if len(rolls) == 0 {
		fmt.Println("No rolls recorded")
		return nil
	}
	for _, r := range rolls {
		fields := r.GetStructValue().GetFields()
		fmt.Printf("%s  %s\n", fields["rolled_at"].GetStringValue(), fields["roll_id"].GetStringValue())
		printRoll("  Attack", fields["attack"].GetStructValue())
		printRoll("  Damage", fields["damage"].GetStructValue())
	}
	return nil
}
