package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	perrors "github.com/AJMerr/playcore/internal/errors"
	"github.com/AJMerr/playcore/internal/session"
)

type Config struct {
	DataDir   string
	HasAPIKey bool
	Endpoint  string
	TimeoutMS int
}

// TokenFetcher is the last.fm call used by the deep check.
type TokenFetcher interface {
	GetToken(ctx context.Context) (string, error)
}

// Report Types
type Check struct {
	Name     string `json:"name"`
	OK       bool   `json:"ok"`
	Warning  bool   `json:"warning"`
	Duration int64  `json:"duration"`
	Message  string `json:"message"`
}

type Report struct {
	DataDir     string  `json:"data_dir"`
	SessionFile string  `json:"session_file"`
	Endpoint    string  `json:"endpoint"`
	TimeoutMS   int     `json:"timeout_ms"`
	Checks      []Check `json:"checks"`
	Result      string  `json:"result"`
	ExitCode    int     `json:"exit_code"`
}

const (
	ExitOK             = 0
	ExitDataDir        = 2
	ExitSessionCorrupt = 3
	ExitDeepFailed     = 5
	ExitInternal       = 9
)

// Core Logic
func Run(ctx context.Context, cfg Config, api TokenFetcher, deep bool) Report {
	store := session.NewStore(cfg.DataDir)
	rep := Report{
		DataDir:     cfg.DataDir,
		SessionFile: store.Path(),
		Endpoint:    cfg.Endpoint,
		TimeoutMS:   cfg.TimeoutMS,
		Checks:      []Check{},
		Result:      "FAIL",
		ExitCode:    ExitInternal,
	}

	// Data directory
	start := time.Now()
	if err := probeWritable(cfg.DataDir); err != nil {
		rep.Checks = append(rep.Checks, Check{"data_dir", false, false, ms(time.Since(start)), err.Error()})
		rep.Result = "FAIL(data_dir)"
		rep.ExitCode = ExitDataDir
		return rep
	}
	rep.Checks = append(rep.Checks, Check{"data_dir", true, false, ms(time.Since(start)), "writable"})

	// Stored session
	start = time.Now()
	sess, err := store.Load()
	switch {
	case perrors.GetCode(err) == perrors.ErrCodeSessionNotFound:
		rep.Checks = append(rep.Checks, Check{"session_file", true, true, ms(time.Since(start)), "no stored session (link an account from the player)"})
	case err != nil:
		rep.Checks = append(rep.Checks, Check{"session_file", false, false, ms(time.Since(start)), err.Error() + " (run 'playcore session logout' to reset)"})
		rep.Result = "FAIL(session_file)"
		rep.ExitCode = ExitSessionCorrupt
		return rep
	default:
		msg := "linked"
		if sess.Name != "" {
			msg += " as " + sess.Name
		}
		rep.Checks = append(rep.Checks, Check{"session_file", true, false, ms(time.Since(start)), msg})
	}

	// Credentials
	if cfg.HasAPIKey {
		rep.Checks = append(rep.Checks, Check{"lastfm_credentials", true, false, 0, "api key and secret set"})
	} else {
		rep.Checks = append(rep.Checks, Check{"lastfm_credentials", true, true, 0, "not configured (set lastfm.api_key and lastfm.api_secret)"})
	}

	// Deep
	if deep {
		if api == nil {
			rep.Checks = append(rep.Checks, Check{"lastfm_api", false, false, 0, "skipped: no credentials"})
			rep.Result = "FAIL(deep)"
			rep.ExitCode = ExitDeepFailed
			return rep
		}
		start = time.Now()
		if _, err := api.GetToken(ctx); err != nil {
			rep.Checks = append(rep.Checks, Check{"lastfm_api", false, false, ms(time.Since(start)), "auth.getToken failed: " + err.Error()})
			rep.Result = "FAIL(deep)"
			rep.ExitCode = ExitDeepFailed
			return rep
		}
		rep.Checks = append(rep.Checks, Check{"lastfm_api", true, false, ms(time.Since(start)), "auth.getToken OK"})
	}

	rep.Result = "PASS"
	rep.ExitCode = ExitOK
	return rep
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}

func RenderJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func RenderHuman(w io.Writer, configFile string, rep Report) {
	if configFile == "" {
		configFile = "(none)"
	}
	fmt.Fprintf(w, "config:   %s\n", configFile)
	fmt.Fprintf(w, "data dir: %s\n", rep.DataDir)
	fmt.Fprintf(w, "session:  %s\n\n", rep.SessionFile)
	for _, c := range rep.Checks {
		mark := "ok  "
		switch {
		case !c.OK:
			mark = "FAIL"
		case c.Warning:
			mark = "warn"
		}
		fmt.Fprintf(w, "[%s] %-18s %s (%dms)\n", mark, c.Name, c.Message, c.Duration)
	}
	fmt.Fprintf(w, "\n%s\n", rep.Result)
}

func ms(d time.Duration) int64 { return d.Milliseconds() }
