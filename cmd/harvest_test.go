package cmd

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"apisport/cmd/config"
	"apisport/internal/sink"
	"apisport/internal/summoner/acquire"
	"apisport/testHelpers"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func footballConfig() config.SportConfig {
	return config.SportConfig{
		APIKey: "K",
		Leagues: map[string][]acquire.LeagueSeason{
			"football": {{League: 39, Season: 2023}},
		},
		Columns: []sink.Column{
			{Name: "id", Path: "$.fixture.id"},
			{Name: "sport"},
		},
	}
}

func outputArgs(dir string) *SportCliArgs {
	return &SportCliArgs{
		SQLFile:  filepath.Join(dir, "matchs.sql"),
		JSONFile: filepath.Join(dir, "matchs.json"),
	}
}

func fixtureProvider() *testHelpers.FakeProvider {
	return testHelpers.NewFakeProvider(func(r *http.Request) (int, string) {
		return http.StatusOK, testHelpers.Envelope("", `{"fixture":{"id":1}}`, `{"fixture":{"id":2}}`)
	})
}

func TestHarvest(t *testing.T) {
	t.Run("It writes the JSON and SQL files", func(t *testing.T) {
		hook := test.NewGlobal()
		defer hook.Reset()

		fp := fixtureProvider()
		defer fp.Close()

		dir := t.TempDir()
		cli := outputArgs(dir)
		cli.Upsert = "id"
		require.NoError(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		jsonOut, err := os.ReadFile(cli.JSONFile)
		require.NoError(t, err)
		assert.Equal(t, `[{"fixture":{"id":1},"sport":"football"},{"fixture":{"id":2},"sport":"football"}]`, string(jsonOut))

		sqlOut, err := os.ReadFile(cli.SQLFile)
		require.NoError(t, err)
		assert.Equal(t, `INSERT INTO "MATCHS" ("id", "sport")
VALUES
  (1, 'football'),
  (2, 'football')
ON CONFLICT ("id") DO UPDATE SET "sport" = EXCLUDED."sport";
`, string(sqlOut))

		var saved []string
		for _, e := range hook.AllEntries() {
			if strings.HasPrefix(e.Message, "saving to ") {
				saved = append(saved, strings.TrimPrefix(e.Message, "saving to "))
			}
		}
		assert.Equal(t, []string{cli.JSONFile, cli.SQLFile}, saved)

		reqs := fp.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "/fixtures", reqs[0].Path)
	})

	t.Run("It queries the team endpoints for teams", func(t *testing.T) {
		fp := testHelpers.NewFakeProvider(func(r *http.Request) (int, string) {
			return http.StatusOK, testHelpers.Envelope("", `{"team":{"id":85,"name":"Paris Saint Germain"}}`)
		})
		defer fp.Close()

		conf := footballConfig()
		conf.Columns = []sink.Column{{Name: "id", Path: "$.team.id"}, {Name: "name", Path: "$.team.name"}, {Name: "sport"}}
		dir := t.TempDir()
		cli := &SportCliArgs{SQLFile: filepath.Join(dir, "teams.sql"), JSONFile: filepath.Join(dir, "teams.json")}
		require.NoError(t, Harvest(context.Background(), cli, conf, teamsResource, fp.Client()))

		reqs := fp.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "/teams", reqs[0].Path)
		assert.Equal(t, "league=39&season=2023", reqs[0].RawQuery)

		sqlOut, err := os.ReadFile(cli.SQLFile)
		require.NoError(t, err)
		assert.Contains(t, string(sqlOut), `(85, 'Paris Saint Germain', 'football')`)
	})

	t.Run("It writes nothing when a fetch fails", func(t *testing.T) {
		fp := testHelpers.NewFakeProvider(func(r *http.Request) (int, string) {
			return http.StatusBadGateway, "bad gateway"
		})
		defer fp.Close()

		dir := t.TempDir()
		cli := outputArgs(dir)
		err := Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client())
		_, ok := acquire.AsTransportError(err)
		assert.True(t, ok)

		assert.NoFileExists(t, cli.JSONFile)
		assert.NoFileExists(t, cli.SQLFile)
	})

	t.Run("It fails without an API key and without requests", func(t *testing.T) {
		fp := fixtureProvider()
		defer fp.Close()

		conf := footballConfig()
		conf.APIKey = ""
		dir := t.TempDir()
		cli := outputArgs(dir)
		err := Harvest(context.Background(), cli, conf, matchesResource, fp.Client())
		assert.ErrorIs(t, err, acquire.ErrMissingCredential)
		assert.Empty(t, fp.Requests())
		assert.NoFileExists(t, cli.JSONFile)
	})

	t.Run("It validates the arguments before fetching", func(t *testing.T) {
		fp := fixtureProvider()
		defer fp.Close()
		dir := t.TempDir()

		cli := outputArgs(dir)
		cli.Upload = true
		assert.Error(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		cli = outputArgs(dir)
		cli.Setup = true
		assert.Error(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		cli = outputArgs(dir)
		cli.Apply = true
		assert.Error(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		cli = outputArgs(dir)
		cli.Upsert = "date"
		assert.Error(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		cli = outputArgs(filepath.Join(dir, "missing"))
		assert.Error(t, Harvest(context.Background(), cli, footballConfig(), matchesResource, fp.Client()))

		conf := footballConfig()
		conf.Columns = nil
		assert.Error(t, Harvest(context.Background(), outputArgs(dir), conf, matchesResource, fp.Client()))

		assert.Empty(t, fp.Requests())
	})

	t.Run("It writes empty outputs when no sport is configured", func(t *testing.T) {
		conf := footballConfig()
		conf.Leagues = map[string][]acquire.LeagueSeason{}
		dir := t.TempDir()
		cli := outputArgs(dir)
		require.NoError(t, Harvest(context.Background(), cli, conf, matchesResource, nil))

		jsonOut, err := os.ReadFile(cli.JSONFile)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(jsonOut))
		sqlOut, err := os.ReadFile(cli.SQLFile)
		require.NoError(t, err)
		assert.Empty(t, sqlOut)
	})
}

func TestHarvestUpload(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	minioHandle, err := testHelpers.NewMinioHandle("minio/minio:latest")
	require.NoError(t, err)
	defer minioHandle.Container.Terminate(context.Background())
	url, err := minioHandle.ConnectionStrings()
	require.NoError(t, err)

	fp := fixtureProvider()
	defer fp.Close()

	host, port, found := strings.Cut(url, ":")
	require.True(t, found)
	conf := footballConfig()
	conf.Minio = config.MinioConfig{
		Address:   host,
		Accesskey: minioHandle.Container.Username,
		Secretkey: minioHandle.Container.Password,
		Bucket:    "sports",
	}
	conf.Minio.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	dir := t.TempDir()
	cli := outputArgs(dir)
	cli.Upload = true

	// the bucket does not exist yet
	require.Error(t, Harvest(context.Background(), cli, conf, matchesResource, fp.Client()))
	assert.Empty(t, fp.Requests())

	cli.Setup = true
	require.NoError(t, Harvest(context.Background(), cli, conf, matchesResource, fp.Client()))

	info, objects, err := testHelpers.GetBucketObjects(minioHandle.Client, "sports", "matchs/")
	require.NoError(t, err)
	require.Len(t, objects, 2)

	jsonOut, err := os.ReadFile(cli.JSONFile)
	require.NoError(t, err)
	var keys []string
	for _, o := range info {
		keys = append(keys, o.Key)
	}
	assert.Contains(t, keys, sink.ObjectName("matchs", "json", jsonOut))
}
