package main

import (
	"fmt"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/spf13/cobra"
)

func newCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code",
		Short: "Print a fresh meeting code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := domain.GenerateToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
