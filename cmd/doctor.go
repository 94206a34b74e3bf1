package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AJMerr/playcore/internal/doctor"
)

func init() {
	var deep, jsonOut bool

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Runs storage and last.fm readiness checks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := lastFMTimeout()
			cfg := doctor.Config{
				DataDir:   viper.GetString("data_dir"),
				Endpoint:  viper.GetString("lastfm.endpoint"),
				TimeoutMS: int(timeout.Milliseconds()),
			}

			var api doctor.TokenFetcher
			if client := newLastFMClient(); client != nil {
				cfg.HasAPIKey = true
				api = client
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			rep := doctor.Run(ctx, cfg, api, deep)
			if jsonOut {
				if err := doctor.RenderJSON(cmd.OutOrStdout(), rep); err != nil {
					return err
				}
			} else {
				doctor.RenderHuman(cmd.OutOrStdout(), viper.ConfigFileUsed(), rep)
			}
			if rep.ExitCode != 0 {
				os.Exit(rep.ExitCode)
			}
			return nil
		},
	}

	doctorCmd.Flags().BoolVar(&deep, "deep", false, "Also call the last.fm API (auth.getToken)")
	doctorCmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")

	rootCmd.AddCommand(doctorCmd)
}
