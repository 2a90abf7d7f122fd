//go:build cgo

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boardlens/boardlens/internal/config"
	"github.com/boardlens/boardlens/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	st, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(ctx))
	require.Equal(t, "libsql", st.Driver())
	return st
}

func successResolution(id string, resolvedAt time.Time) *core.Resolution {
	return &core.Resolution{
		Query:   "卡坦岛",
		Outcome: core.OutcomeSuccess,
		Game: &core.GameRecord{
			CatalogID: "13",
			Name:      "Catan",
			CNName:    "卡坦岛",
			Provenance: core.Provenance{
				ResolutionID: id,
				NameSource:   core.NameSourceDictionary,
				DataSource:   core.DataSourceStructuredAPI,
				ResolvedAt:   resolvedAt,
			},
		},
	}
}

func TestInsertAndListHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.InsertResolution(ctx, successResolution("res-1", base)))
	require.NoError(t, st.InsertResolution(ctx, &core.Resolution{
		Query:   "未知游戏",
		Outcome: core.OutcomeFailure,
		Failure: &core.FailureRecord{
			Name:      "Unknown Game",
			CNName:    "未知游戏",
			BGGFailed: true,
			Provenance: core.Provenance{
				ResolutionID: "res-2",
				NameSource:   core.NameSourceSearchAI,
				DataSource:   core.DataSourceNone,
				ResolvedAt:   base.Add(time.Minute),
			},
		},
	}))

	entries, err := st.ListHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	require.Equal(t, "res-2", entries[0].ResolutionID)
	require.Equal(t, core.OutcomeFailure, entries[0].Outcome)
	require.Equal(t, "Unknown Game", entries[0].Name)
	require.Equal(t, "search_ai", entries[0].NameSource)
	require.Equal(t, "none", entries[0].DataSource)

	require.Equal(t, "res-1", entries[1].ResolutionID)
	require.Equal(t, "Catan", entries[1].Name)
	require.Equal(t, "卡坦岛", entries[1].CNName)
	require.Equal(t, "13", entries[1].CatalogID)
	require.Equal(t, base, entries[1].ResolvedAt)
}

func TestInsertResolutionIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	res := successResolution("res-dup", time.Now().UTC())
	require.NoError(t, st.InsertResolution(ctx, res))
	require.NoError(t, st.InsertResolution(ctx, res))

	entries, err := st.ListHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestListHistoryDefaultLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		res := successResolution("", base.Add(time.Duration(i)*time.Second))
		res.Game.Provenance.ResolutionID = time.Duration(i).String() + "-id"
		require.NoError(t, st.InsertResolution(ctx, res))
	}

	entries, err := st.ListHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 20)
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}
