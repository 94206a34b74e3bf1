package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	perrors "github.com/AJMerr/playcore/internal/errors"
	"github.com/AJMerr/playcore/internal/logging"
	"github.com/AJMerr/playcore/internal/session"
)

func init() {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the stored last.fm session",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored last.fm session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore(viper.GetString("data_dir"))
			st := session.Restore(store, logging.NewLogger("session"))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:   %s\n", store.Path())
			fmt.Fprintf(out, "status: %s\n", st.Status)
			if st.IsConnected() {
				fmt.Fprintf(out, "user:   %s\n", st.Session.Name)
				fmt.Fprintf(out, "subscriber: %t\n", st.Session.Subscriber)
			}
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored last.fm session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore(viper.GetString("data_dir"))
			if err := store.Remove(); err != nil {
				return perrors.Wrap(err, perrors.ErrCodeSessionWrite, "remove "+store.Path())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out of last.fm")
			return nil
		},
	}

	sessionCmd.AddCommand(showCmd, logoutCmd)
	rootCmd.AddCommand(sessionCmd)
}
