package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/refbook-backend/internal/app"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, app.BuildVersion(), strings.TrimSpace(out))
}

func TestMigrateCmd_RejectsUnknownDirection(t *testing.T) {
	_, err := run(t, "migrate", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestSeedCmd_RequiresFile(t *testing.T) {
	t.Setenv("SEEDER_FILE", "")

	_, err := run(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

func TestSeedCmd_DryRun(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://unused@localhost:1/none")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "seed", "--dry-run", "-f", "../../internal/app/seeder/testdata/refbooks.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "validated 2 refbooks, 3 versions, 7 elements")
}

func TestRootCmd_ListsSubcommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "migrate", "seed", "version"} {
		assert.Contains(t, out, name)
	}
}
