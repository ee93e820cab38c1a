package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SumanthCsy/Mens-Club-sub000/app/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_Subcommands(t *testing.T) {
	root := NewCommand(configs.ENV{})
	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed", "generate-keys"}, names)
	assert.NotNil(t, root.Action)
}

func TestGenerateKeysCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "keys.env")
	err := NewCommand(configs.ENV{}).Run(context.Background(), []string{"mensclub", "generate-keys", "--out", out})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "APP_ENC_KEY="))
}

func TestSeedCommand_MemoryStore(t *testing.T) {
	env := configs.ENV{StoreDriver: configs.DriverMemory}
	err := NewCommand(env).Run(context.Background(), []string{"mensclub", "seed", "--fake", "2"})
	require.NoError(t, err)
}

func TestMigrateCommand_SkipsNonMySQL(t *testing.T) {
	env := configs.ENV{StoreDriver: configs.DriverMongo}
	require.NoError(t, NewCommand(env).Run(context.Background(), []string{"mensclub", "migrate"}))
}

func TestSessionKeys_ProductionRequiresKeys(t *testing.T) {
	_, err := sessionKeys(configs.ENV{AppEnv: "production"})
	assert.Error(t, err)

	keys, err := sessionKeys(configs.ENV{})
	require.NoError(t, err)
	assert.Len(t, keys.AuthKey, 64)
}
