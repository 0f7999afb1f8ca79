package db

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trend-resolver/internal/types"
)

func TestInsertTrends_Placeholders(t *testing.T) {
	records := []types.PersistableRecord{{Keyword: "a"}, {Keyword: "b"}}

	pg, pgArgs, err := postgresStatements.insertTrends("run", records)
	require.NoError(t, err)
	assert.Contains(t, pg, "$26")
	assert.NotContains(t, pg, "?")
	assert.Len(t, pgArgs, 2*len(trendColumns))

	lite, liteArgs, err := sqliteStatements.insertTrends("run", records)
	require.NoError(t, err)
	assert.Equal(t, 2*len(trendColumns), strings.Count(lite, "?"))
	assert.Equal(t, pgArgs, liteArgs)
}

func TestInsertTrends_Empty(t *testing.T) {
	_, _, err := sqliteStatements.insertTrends("run", nil)
	assert.Error(t, err)
}

func TestCompleteRun_Statement(t *testing.T) {
	at := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)
	query, args, err := postgresStatements.completeRun("id-1", RunStatusCompleted, RunCounts{Entertainment: 2, NonEntertainment: 3, Saved: 9}, at)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "UPDATE trend_runs SET"))
	assert.Contains(t, query, "WHERE id = $6")
	assert.Equal(t, []any{RunStatusCompleted, 2, 3, 9, at, "id-1"}, args)
}

func TestSelectTrends_Filters(t *testing.T) {
	query, args, err := sqliteStatements.selectTrends(HistoryFilter{Keyword: "Barbie"}, "r1")
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE keyword = ? AND run_id = ?")
	assert.Contains(t, query, "LIMIT 20")
	assert.Equal(t, []any{"Barbie", "r1"}, args)

	query, args, err = postgresStatements.selectTrends(HistoryFilter{Limit: 5}, nil)
	require.NoError(t, err)
	assert.Contains(t, query, "COALESCE(run_id::text, '')")
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "LIMIT 5")
	assert.Empty(t, args)
}
