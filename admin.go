/* admin.go
 * Contains the one-shot admin subcommands used to maintain the pool between matches
 */

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"handicap-pool/api/api"
	"handicap-pool/api/logic"
)

// runAdmin executes a single admin command against the API and prints its outcome to out
func runAdmin(ctx context.Context, a *api.API, command string, args []string, out io.Writer) error {
	switch command {
	case "add-gambler":
		if len(args) != 1 {
			return usageError(command, "<name>")
		}
		gambler, created, err := a.RegisterGambler(ctx, args[0], "")
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(out, "%s is already registered\n", gambler.Name)
			return nil
		}
		fmt.Fprintf(out, "registered %s (%s)\n", gambler.Name, gambler.OpenID)

	case "drop-gambler":
		if len(args) != 1 {
			return usageError(command, "<name>")
		}
		if err := a.DropGambler(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "dropped %s\n", args[0])

	case "add-auction":
		if len(args) != 3 {
			return usageError(command, "<team> <gambler> <price>")
		}
		price, err := parseFloatArg("price", args[2])
		if err != nil {
			return err
		}
		auction, err := a.InsertAuction(ctx, args[0], args[1], price)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s bought %s for %s\n", auction.Gambler, auction.Team, logic.FormatPoints(auction.Price))

	case "set-score":
		if len(args) != 3 {
			return usageError(command, "<match id> <a> <b>")
		}
		scoreA, err := parseScoreArg(args[1])
		if err != nil {
			return err
		}
		scoreB, err := parseScoreArg(args[2])
		if err != nil {
			return err
		}
		if err = a.UpdateMatchScore(ctx, args[0], &scoreA, &scoreB); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s finished %d:%d\n", args[0], scoreA, scoreB)

	case "set-weight":
		if len(args) != 2 {
			return usageError(command, "<match id> <weight>")
		}
		weight, err := parseFloatArg("weight", args[1])
		if err != nil {
			return err
		}
		if err = a.UpdateMatchWeight(ctx, args[0], weight); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s weight %s\n", args[0], logic.FormatPoints(weight))

	case "show":
		standings, err := a.GetStandings(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
		for i, s := range standings {
			fmt.Fprintf(tw, "%d.\t%s\t%s\t\n", i+1, s.Gambler, logic.FormatPoints(s.Points))
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
