package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/dlyt"
)

var (
	usageFrom string
	usageTo   string
	usageDays int
)

// accountCmd groups account commands
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account profile, quota packages and usage",
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := client.Profile(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(profile, func(w io.Writer) { printProfile(w, profile) })
	},
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List quota packages and remaining characters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		packages, err := client.Packages(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(packages, func(w io.Writer) { printPackages(w, packages) })
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show daily character consumption",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := client.Usage(cmd.Context(), usageRange())
		if err != nil {
			return err
		}
		return printResult(days, func(w io.Writer) { printUsage(w, days) })
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch profile, packages and usage at once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := client.Summary(cmd.Context(), usageRange())
		if err != nil {
			return err
		}
		return printResult(summary, func(w io.Writer) {
			if summary.Profile != nil {
				printProfile(w, summary.Profile)
				fmt.Fprintln(w)
			}
			printPackages(w, summary.Packages)
			fmt.Fprintln(w)
			printUsage(w, summary.Usage)
			for _, msg := range summary.Errors {
				fmt.Fprintf(w, "\n! %s\n", msg)
			}
		})
	},
}

func usageRange() dlyt.UsageRange {
	return dlyt.UsageRange{From: usageFrom, To: usageTo, Days: usageDays}
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(profileCmd, packagesCmd, usageCmd, summaryCmd)

	for _, c := range []*cobra.Command{usageCmd, summaryCmd} {
		c.Flags().StringVar(&usageFrom, "from", "", "first day, YYYY-MM-DD")
		c.Flags().StringVar(&usageTo, "to", "", "last day, YYYY-MM-DD")
		c.Flags().IntVar(&usageDays, "days", 0, "number of most recent days")
	}
}
