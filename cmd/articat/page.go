package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newPageCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "page <number>",
		Short: "Fetch one catalog page and print it as JSON",
		Args:  cobra.ExactArgs(1),
		Example: `  # Print page 3
  articat page 3

  # Pipe into jq
  articat page 1 | jq '.data[].title'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page number %q: %w", args[0], err)
			}

			logger, closeLog, err := setupLogging(flags)
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := buildClient(cmd, flags, logger)
			if err != nil {
				return err
			}

			page, err := client.FetchPage(cmd.Context(), pageNumber)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Pagination any `json:"pagination"`
				Data       any `json:"data"`
			}{page.Pagination, page.Records})
		},
	}
}
