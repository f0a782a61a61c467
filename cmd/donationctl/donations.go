package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
)

func donationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donations",
		Short: "Inspect recorded donations",
	}
	cmd.AddCommand(donationsListCmd())
	return cmd
}

func donationsListCmd() *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List donations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, err := openStores(ctx)
			if err != nil {
				return err
			}
			defer stores.Close()

			donations, err := service.NewDonationService(stores.Donations).ListDonations(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(donations) > limit {
				donations = donations[:limit]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(donations)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tID\tNAME\tAMOUNT\tMETHOD\tPAYMENT")
			for _, d := range donations {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.Date.Local().Format("2006-01-02 15:04"),
					d.ID, d.FullName, d.AmountINR.StringFixed(2), d.PaymentMethod, d.PaymentID)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum rows, 0 for all")

	return cmd
}
