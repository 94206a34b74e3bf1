package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AJMerr/playcore/internal/app"
	"github.com/AJMerr/playcore/internal/broadcast"
	perrors "github.com/AJMerr/playcore/internal/errors"
	"github.com/AJMerr/playcore/internal/lastfm"
	"github.com/AJMerr/playcore/internal/logging"
	"github.com/AJMerr/playcore/internal/queue"
	"github.com/AJMerr/playcore/internal/session"
	"github.com/AJMerr/playcore/internal/state"
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Run the player with the given files queued",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger("run")

			items := make([]queue.Item, 0, len(args))
			for _, a := range args {
				items = append(items, queue.Item{Path: a})
			}

			client := newLastFMClient()
			opts := state.Options{
				Store:  session.NewStore(viper.GetString("data_dir")),
				Logger: logging.NewLogger("state"),
			}
			deps := app.Deps{Timeout: lastFMTimeout()}
			if client != nil {
				opts.LastFM = func(s session.Session) (broadcast.Service, error) {
					return lastfm.NewScrobbler(client.WithSession(s.Key), logging.NewLogger("lastfm")), nil
				}
				deps.Linker = client
			} else {
				log.Info("last.fm API credentials not configured, scrobbling disabled")
			}

			bridge := app.NewBridge(logging.NewLogger("bridge"))
			opts.Decoder = bridge

			reg := state.Build(queue.New(items...), opts)
			defer reg.Close()

			deps.Registry = reg
			m := app.New(deps)
			defer m.Close()

			p := tea.NewProgram(m, tea.WithAltScreen())
			bridge.Attach(p)
			_, err := p.Run()

			// let queued now-playing/scrobble calls finish
			reg.Dispatcher.Wait()
			if err != nil {
				return perrors.Wrap(err, perrors.ErrCodeInternal, "player loop failed")
			}
			return nil
		},
	}
	rootCmd.AddCommand(runCmd)
}
