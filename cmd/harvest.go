package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"apisport/cmd/config"
	"apisport/internal/check"
	"apisport/internal/minioWrapper"
	"apisport/internal/sink"
	"apisport/internal/sports"
	"apisport/internal/store"
	"apisport/internal/summoner"
	"apisport/internal/summoner/acquire"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type SportCliArgs struct {
	Config   string // full path to config
	SQLFile  string // file to save sql
	JSONFile string // file to save json
	Upsert   string // column used for ON CONFLICT, empty for plain inserts
	Upload   bool   // push both files to the configured minio bucket
	Setup    bool   // create the bucket before uploading
	Apply    bool   // run the SQL against postgres.dsn
}

// Resource ties a command to the clients it runs and the table it fills
type Resource struct {
	Name     string
	Table    string
	Registry func(acquire.Options) *acquire.Registry
}

var (
	matchesResource = Resource{Name: "matches", Table: "MATCHS", Registry: sports.Matches}
	teamsResource   = Resource{Name: "teams", Table: "TEAMS", Registry: sports.Teams}
)

// Harvest fetches every configured sport for res and writes the results.
// Nothing is written when any fetch fails. httpClient may be nil.
func Harvest(ctx context.Context, cli *SportCliArgs, conf config.SportConfig, res Resource, httpClient *http.Client) error {
	if cli.Upload && !conf.Minio.Enabled() {
		return errors.New("--upload needs minio.bucket in the config file")
	}
	if cli.Setup && !cli.Upload {
		return errors.New("setup is only valid when --upload is also specified")
	}
	if err := check.OutputDirs(cli.JSONFile, cli.SQLFile); err != nil {
		return err
	}
	if cli.Apply {
		if err := check.DSN(conf.Postgres.DSN); err != nil {
			return err
		}
	}
	// render an empty statement to catch a bad columns section before any request
	if _, err := sink.SQL(res.Table, nil, conf.Columns, cli.Upsert); err != nil {
		return fmt.Errorf("invalid columns config: %w", err)
	}

	var mc minioWrapper.MinioClientWrapper
	if cli.Upload {
		var err error
		mc, err = conf.Minio.NewClient()
		if err != nil {
			return fmt.Errorf("error creating minio client: %w", err)
		}
		if cli.Setup {
			err = check.Setup(ctx, &mc)
		} else {
			err = check.PreflightChecks(ctx, &mc)
		}
		if err != nil {
			return fmt.Errorf("minio access check failed. Make sure the server is running. Full error was: '%w'", err)
		}
	}

	opts := conf.AcquireOptions()
	opts.HTTPClient = httpClient

	log.Info("Loading ", res.Name)
	records, stats, err := summoner.Summon(ctx, res.Registry(opts), conf.Leagues)
	if err != nil {
		return err
	}
	for _, sport := range stats.Sports {
		log.WithField("sport", sport).Debugf("%d %s", stats.Counts[sport], res.Name)
	}
	log.Infof("%d %s found", len(records), res.Name)

	jsonBlob, err := sink.JSON(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cli.JSONFile, jsonBlob, 0o644); err != nil {
		return err
	}
	log.Info("saving to ", cli.JSONFile)

	sqlText, err := sink.SQL(res.Table, records, conf.Columns, cli.Upsert)
	if err != nil {
		return err
	}
	log.Debug(sqlText)
	if err := os.WriteFile(cli.SQLFile, []byte(sqlText), 0o644); err != nil {
		return err
	}
	log.Info("saving to ", cli.SQLFile)

	if cli.Upload {
		prefix := strings.ToLower(res.Table)
		if err := mc.PutBlob(ctx, sink.ObjectName(prefix, "json", jsonBlob), "application/json", jsonBlob); err != nil {
			return err
		}
		if err := mc.PutBlob(ctx, sink.ObjectName(prefix, "sql", []byte(sqlText)), "application/sql", []byte(sqlText)); err != nil {
			return err
		}
	}

	if cli.Apply {
		if err := store.Apply(ctx, conf.Postgres.DSN, sqlText); err != nil {
			return err
		}
	}

	return nil
}

func newHarvestCmd(use, short string, res Resource, sqlFile, jsonFile string) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := &SportCliArgs{}
			cli.Config, _ = cmd.Flags().GetString("config")
			cli.SQLFile, _ = cmd.Flags().GetString("sql-file")
			cli.JSONFile, _ = cmd.Flags().GetString("json-file")
			cli.Upsert, _ = cmd.Flags().GetString("upsert")
			cli.Upload, _ = cmd.Flags().GetBool("upload")
			cli.Setup, _ = cmd.Flags().GetBool("setup")
			cli.Apply, _ = cmd.Flags().GetBool("apply")

			conf, err := config.ReadSportConfig(filepath.Dir(cli.Config), filepath.Base(cli.Config))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Harvest(ctx, cli, conf, res, nil)
		},
	}

	c.Flags().StringP("sql-file", "s", sqlFile, "file to save sql")
	c.Flags().StringP("json-file", "j", jsonFile, "file to save json")
	c.Flags().StringP("upsert", "u", "", "allow sql conflict and upsert precise primary key")
	c.Flags().Bool("upload", false, "upload the json and sql files to the minio bucket from the config")
	c.Flags().Bool("setup", false, "create the minio bucket before uploading")
	c.Flags().Bool("apply", false, "execute the generated sql against postgres.dsn from the config")
	return c
}
