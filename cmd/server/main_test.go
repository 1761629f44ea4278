package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etherpets/internal/app/pets"
	"etherpets/internal/config"
)

const testWallet = "0x52908400098527886e0f7030069857d2e4169ee7"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "sweep", "migrate", "cleanup"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	require.NoError(t, setupLogging(config.LogConfig{Level: "warn"}))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	require.Error(t, setupLogging(config.LogConfig{Level: "loud"}))
}

func TestBuildAppWithMemoryStore(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	cfg.Chain.Enabled = true
	cfg.Chain.Contract = "0x0000000000000000000000000000000000000abc"

	a, err := buildApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	p, err := a.Pets.Create(context.Background(), pets.CreateRequest{Owner: testWallet, Name: "Rex", Species: "spirit"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.TokenID)

	u, created, err := a.Account.Login(context.Background(), testWallet, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 100, u.Coins)

	h := a.Handler()
	assert.NotNil(t, h.KPI)
}

func TestBuildAppRejectsBadContract(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	cfg.Chain.Enabled = true
	cfg.Chain.Contract = "nope"

	_, err = buildApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestSweepCommandOnMemoryStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: error\n  pretty: false\n"), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"sweep", "--config", dir})
	require.NoError(t, root.Execute())
	assert.Equal(t, "scanned=0 updated=0 alerts=0 failed=0\n", out.String())
}

func TestMigrateRequiresPostgres(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", t.TempDir()})
	require.Error(t, root.Execute())
}
