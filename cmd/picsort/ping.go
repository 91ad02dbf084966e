package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/picsort/internal/cli"
)

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured model answers",
		Long:  `Send one short text-only request to confirm the API key, endpoint and model work before a long run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := createLLMClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			start := time.Now()
			reply, err := client.Ping(ctx)
			if err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"%s replied %q in %s", viper.GetString("llm.model"), reply, time.Since(start).Round(time.Millisecond))))
			return nil
		},
	}
}
