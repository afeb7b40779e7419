// Command gstcalc calculates GST for an invoice described as JSON.
//
// Usage:
//
//	gstcalc [-format json|csv|xlsx] [-out file] [request.json]
//
// The request is read from stdin when no file is given. It exits with status
// 2 when the request is not ready to calculate (no usable line item or a
// missing or unrecognised state) and 1 on any other error. The -out file is
// only written when the calculation succeeds.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"invonest/internal/config"
	"invonest/internal/domain"
	"invonest/internal/gst"
	"invonest/internal/logger"
	"invonest/internal/service"
	"invonest/internal/validator"
)

const (
	exitOK       = 0
	exitError    = 1
	exitNotReady = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gstcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "json", "output format: json, csv or xlsx")
	outPath := fs.String("out", "", "write output to this file instead of stdout")
	maxItems := fs.Int("max-items", 500, "maximum number of line items")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	zl, err := logger.New(config.LogConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer func() { _ = zl.Sync() }()

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		defer f.Close()
		in = f
	}

	var req domain.CalculateRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		fmt.Fprintf(stderr, "invalid request: %v\n", err)
		return exitError
	}

	svc := service.NewInvoiceService(nil, nil, validator.NewBuiltinEngine(nil, zl), *maxItems, zl)
	var buf bytes.Buffer
	if err := render(svc, &req, strings.ToLower(*format), &buf); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, gst.ErrInsufficientInput) || errors.Is(err, gst.ErrMissingState) {
			return exitNotReady
		}
		zl.Debug("calculation failed", zap.Error(err))
		return exitError
	}

	// The output file is only created once the calculation has succeeded.
	if err := writeOutput(*outPath, buf.Bytes(), stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func render(svc service.InvoiceService, req *domain.CalculateRequest, format string, w io.Writer) error {
	ctx := context.Background()
	if format == "json" {
		res, err := svc.Calculate(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(service.NewCalculationView(res))
	}

	file, err := svc.Export(ctx, req, domain.ExportFormat(format))
	if err != nil {
		return err
	}
	_, err = w.Write(file.Data)
	return err
}
