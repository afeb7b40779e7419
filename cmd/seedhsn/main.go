// Command seedhsn converts the GST HSN/SAC rate workbook into a SQL seed file
// for the hsn_codes table. The workbook may be a local file or an S3 object.
//
// Usage:
//
//	seedhsn -in "GST_HSN_summary.xlsx" -out db/seeds/hsn_codes.sql
//	seedhsn -in s3://gst-rates/hsn/2025.xlsx
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"invonest/internal/config"
	"invonest/internal/hsnseed"
	"invonest/internal/logger"
	"invonest/internal/port"
	s3storage "invonest/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "GST_HSN_summary.xlsx", "workbook path or s3://bucket/key")
	out := flag.String("out", "db/seeds/hsn_codes.sql", "output SQL file")
	batch := flag.Int("batch", hsnseed.DefaultBatchSize, "rows per INSERT statement")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	var fetcher port.ObjectFetcher
	if hsnseed.IsRemote(*in) {
		fetcher, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	data, err := hsnseed.ReadSource(ctx, *in, fetcher)
	if err != nil {
		return err
	}
	entries, err := hsnseed.ReadWorkbook(bytes.NewReader(data))
	if err != nil {
		return err
	}
	zl.Info("workbook parsed", zap.String("source", *in), zap.Int("entries", len(entries)))

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := hsnseed.WriteSQL(f, entries, *batch); err != nil {
		_ = f.Close()
		return fmt.Errorf("write seed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	zl.Info("seed written", zap.String("path", *out), zap.Int("entries", len(entries)))
	return nil
}
