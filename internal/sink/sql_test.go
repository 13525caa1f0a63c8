package sink

import (
	"testing"

	"apisport/internal/summoner/acquire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matchColumns = []Column{
	{Name: "id", Path: "$.fixture.id"},
	{Name: "home", Path: "$.teams.home.name"},
	{Name: "sport"},
}

var matchRecords = []acquire.Record{
	acquire.Record(`{"fixture":{"id":1},"teams":{"home":{"name":"O'Brien FC"}},"sport":"football"}`),
	acquire.Record(`{"fixture":{"id":2},"sport":"football"}`),
}

func TestSQL(t *testing.T) {
	t.Run("It renders one insert with a row per record", func(t *testing.T) {
		out, err := SQL("MATCHS", matchRecords, matchColumns, "")
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "MATCHS" ("id", "home", "sport")
VALUES
  (1, 'O''Brien FC', 'football'),
  (2, NULL, 'football');
`, out)
	})

	t.Run("It adds a conflict clause for the upsert key", func(t *testing.T) {
		out, err := SQL("MATCHS", matchRecords[1:], matchColumns, "id")
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "MATCHS" ("id", "home", "sport")
VALUES
  (2, NULL, 'football')
ON CONFLICT ("id") DO UPDATE SET "home" = EXCLUDED."home", "sport" = EXCLUDED."sport";
`, out)
	})

	t.Run("It does nothing on conflict when the key is the only column", func(t *testing.T) {
		out, err := SQL("TEAMS", []acquire.Record{acquire.Record(`{"id":3}`)}, []Column{{Name: "id"}}, "id")
		require.NoError(t, err)
		assert.Contains(t, out, "\nON CONFLICT (\"id\") DO NOTHING;\n")
	})

	t.Run("It renders scalars and nested values", func(t *testing.T) {
		record := acquire.Record(`{"ok":true,"off":false,"score":1.5,"meta":{"b":1,"a":[1,2]},"none":null}`)
		columns := []Column{{Name: "ok"}, {Name: "off"}, {Name: "score"}, {Name: "meta"}, {Name: "none"}, {Name: "missing"}}
		out, err := SQL("T", []acquire.Record{record}, columns, "")
		require.NoError(t, err)
		assert.Contains(t, out, `  (TRUE, FALSE, 1.5, '{"a":[1,2],"b":1}', NULL, NULL);`)
	})

	t.Run("It renders nothing without records", func(t *testing.T) {
		out, err := SQL("MATCHS", nil, matchColumns, "id")
		require.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("It rejects bad column settings", func(t *testing.T) {
		_, err := SQL("MATCHS", matchRecords, nil, "")
		assert.ErrorIs(t, err, errNoColumns)

		_, err = SQL("MATCHS", matchRecords, []Column{{Path: "$.id"}}, "")
		assert.Error(t, err)

		_, err = SQL("MATCHS", matchRecords, []Column{{Name: "id", Path: "$.fixture["}}, "")
		assert.Error(t, err)

		_, err = SQL("MATCHS", matchRecords, matchColumns, "date")
		assert.ErrorContains(t, err, `upsert key "date"`)
	})

	t.Run("It fails on a record that is not JSON", func(t *testing.T) {
		_, err := SQL("MATCHS", []acquire.Record{acquire.Record(`{"id":`)}, matchColumns, "")
		assert.ErrorContains(t, err, "record 0")
	})
}
