package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJMerr/playcore/internal/session"
)

type fakeTokens struct{ err error }

func (f fakeTokens) GetToken(context.Context) (string, error) { return "tok", f.err }

func check(t *testing.T, rep Report, name string) Check {
	t.Helper()
	for _, c := range rep.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not in report", name)
	return Check{}
}

func TestRun_FreshInstall(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	rep := Run(context.Background(), Config{DataDir: dir}, nil, false)

	assert.Equal(t, ExitOK, rep.ExitCode)
	assert.Equal(t, "PASS", rep.Result)
	assert.DirExists(t, dir)
	assert.True(t, check(t, rep, "session_file").Warning)
	assert.True(t, check(t, rep, "lastfm_credentials").Warning)
}

func TestRun_LinkedSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, session.NewStore(dir).Save(session.Session{Name: "rj", Key: "k"}))

	rep := Run(context.Background(), Config{DataDir: dir, HasAPIKey: true}, fakeTokens{}, true)

	assert.Equal(t, ExitOK, rep.ExitCode)
	c := check(t, rep, "session_file")
	assert.False(t, c.Warning)
	assert.Equal(t, "linked as rj", c.Message)
	assert.True(t, check(t, rep, "lastfm_api").OK)
}

func TestRun_CorruptSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, session.FileName), []byte("{oops"), 0o600))

	rep := Run(context.Background(), Config{DataDir: dir}, nil, false)

	assert.Equal(t, ExitSessionCorrupt, rep.ExitCode)
	assert.Equal(t, "FAIL(session_file)", rep.Result)
}

func TestRun_DataDirNotWritable(t *testing.T) {
	parent := t.TempDir()
	file := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	rep := Run(context.Background(), Config{DataDir: filepath.Join(file, "data")}, nil, false)

	assert.Equal(t, ExitDataDir, rep.ExitCode)
	assert.False(t, check(t, rep, "data_dir").OK)
}

func TestRun_DeepFailures(t *testing.T) {
	rep := Run(context.Background(), Config{DataDir: t.TempDir()}, nil, true)
	assert.Equal(t, ExitDeepFailed, rep.ExitCode)

	rep = Run(context.Background(), Config{DataDir: t.TempDir(), HasAPIKey: true}, fakeTokens{err: errors.New("bad key")}, true)
	assert.Equal(t, ExitDeepFailed, rep.ExitCode)
	assert.Contains(t, check(t, rep, "lastfm_api").Message, "bad key")
}

func TestRender(t *testing.T) {
	rep := Run(context.Background(), Config{DataDir: t.TempDir()}, nil, false)

	var human bytes.Buffer
	RenderHuman(&human, "", rep)
	assert.Contains(t, human.String(), "config:   (none)")
	assert.Contains(t, human.String(), "[warn] session_file")
	assert.Contains(t, human.String(), "PASS")

	var js bytes.Buffer
	require.NoError(t, RenderJSON(&js, rep))
	var back Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, rep.Result, back.Result)
	assert.Len(t, back.Checks, 3)
}
