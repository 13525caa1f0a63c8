package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"apisport/internal/minioWrapper"

	log "github.com/sirupsen/logrus"
)

// OutputDirs checks that every output file can be created in an existing
// directory.
func OutputDirs(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			return fmt.Errorf("empty output path")
		}
		dir := filepath.Dir(p)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("output directory for %s: %w", p, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory for %s: %s is not a directory", p, dir)
		}
	}
	log.Debug("Validated output paths: ", paths)
	return nil
}

// Setup creates the bucket when requested and then runs the preflight check
func Setup(ctx context.Context, mc *minioWrapper.MinioClientWrapper) error {
	log.Info("Setting up bucket ", mc.DefaultBucket)
	if err := mc.SetupBucket(ctx); err != nil {
		log.Error("Error making bucket for Setup call ", err)
		return err
	}
	return PreflightChecks(ctx, mc)
}

// PreflightChecks checks we can connect and that the bucket exists
func PreflightChecks(ctx context.Context, mc *minioWrapper.MinioClientWrapper) error {
	if err := mc.ValidateBucket(ctx); err != nil {
		log.Error("Can not find bucket. ", err)
		return err
	}
	log.Debug("Validated access to object store: ", mc.DefaultBucket)
	return nil
}

// DSN checks that a database was configured when SQL should be applied
func DSN(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("--apply needs postgres.dsn in the config file")
	}
	return nil
}
