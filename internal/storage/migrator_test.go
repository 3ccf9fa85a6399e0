package storage

import (
	"context"
	"io/fs"
	"testing"

	"menu-bot/internal/storage/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrate_UnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "sideways", zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sideways"`)
}

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_products.sql",
		"00002_create_cart_items.sql",
		"00003_seed_menu.sql",
	}, files)
}
