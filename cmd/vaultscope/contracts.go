package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vaultScope/internal/config"
	"vaultScope/internal/contracts"
)

func newContractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "List the configured protocol contracts",
		RunE:  runContracts,
	}
	cmd.Flags().String("contracts", "", "protocol contract addresses (comma-separated name=address)")
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func runContracts(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	list := contracts.List(cfg.Contracts)
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, list)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTRACT\tADDRESS\tDESCRIPTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Address, c.Description)
	}
	return tw.Flush()
}
