package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/repository"
)

func TestHintRepository_RecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHintRepository(10)

	require.NoError(t, repo.RecordHint(ctx, "pikachu", "el"))
	require.NoError(t, repo.RecordHint(ctx, "pikachu", "elec"))

	hints, err := repo.ListHints(ctx, "pikachu")
	require.NoError(t, err)
	require.Len(t, hints, 2)
	assert.Equal(t, "el", hints[0].HintText)
	assert.Equal(t, "elec", hints[1].HintText)
	assert.NotEmpty(t, hints[0].ID)
}

func TestHintRepository_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHintRepository(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.RecordHint(ctx, "eevee", fmt.Sprintf("h%d", i)))
	}

	hints, err := repo.ListHints(ctx, "eevee")
	require.NoError(t, err)
	require.Len(t, hints, 3)
	assert.Equal(t, "h2", hints[0].HintText)
}

func TestHintRepository_InvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHintRepository(0)

	assert.ErrorIs(t, repo.RecordHint(ctx, "", "x"), domain.ErrInvalidInput)

	hints, err := repo.ListHints(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, hints)
}
