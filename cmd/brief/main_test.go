package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/brief"
	main "github.com/fwojciec/brief/cmd/brief"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	newMain := func(t *testing.T) *main.Main {
		t.Helper()
		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "config.json")
		return m
	}

	t.Run("help lists the commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range []string{"send", "summarize", "extract", "key", "prompts", "last", "serve"} {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := newMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("stores and reads prompts in the database", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "brief.db")
		run := func(args ...string) string {
			stdout := &bytes.Buffer{}
			err := newMain(t).Run(context.Background(), append([]string{"--db", db}, args...), stdout, &bytes.Buffer{})
			require.NoError(t, err)
			return stdout.String()
		}

		run("prompts", "set", "--short", "Bullet points.")
		out := run("prompts", "show")

		assert.Contains(t, out, `short: "Bullet points."`)
		assert.Contains(t, out, "(default)")
	})
	t.Run("one-shot tab commands need a running Chrome", func(t *testing.T) {
		t.Parallel()

		for _, args := range [][]string{
			{"send"},
			{"summarize", "--type", "detailed"},
			{"extract"},
		} {
			t.Run(args[0], func(t *testing.T) {
				t.Parallel()

				stderr := &bytes.Buffer{}
				argv := append([]string{"--db", filepath.Join(t.TempDir(), "brief.db"), "--cdp-url="}, args...)

				err := newMain(t).Run(context.Background(), argv, &bytes.Buffer{}, stderr)

				assert.Equal(t, brief.EINVALID, brief.ErrorCode(err))
				assert.Contains(t, brief.ErrorMessage(err), "needs --cdp-url")
				assert.Contains(t, stderr.String(), "--remote-debugging-port")
			})
		}
	})
}
