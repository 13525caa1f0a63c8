package sink

import (
	"testing"

	"apisport/internal/summoner/acquire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Run("It writes an empty array for no records", func(t *testing.T) {
		out, err := JSON(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(out))
	})

	t.Run("It writes the records as one compact array", func(t *testing.T) {
		out, err := JSON([]acquire.Record{
			acquire.Record(`{"fixture": {"id": 1}, "sport": "football"}`),
			acquire.Record(`{"id":2,"sport":"hockey"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, `[{"fixture":{"id":1},"sport":"football"},{"id":2,"sport":"hockey"}]`, string(out))
	})
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", GetSHA([]byte("abc")))
	assert.Equal(t, "matchs/a9993e364706816aba3e25717850c26c9cd0d89d.json", ObjectName("matchs", "json", []byte("abc")))
}
