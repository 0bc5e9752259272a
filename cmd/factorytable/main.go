/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command factorytable reads values from a DynamoDB table and prints them
// decoded through the process-wide factory table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/suparena/factorytable"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/config"
	"github.com/suparena/factorytable/datastore/ddb"
	"github.com/suparena/factorytable/datastore/testmodels"
	"github.com/suparena/factorytable/storagemodels"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// record is one printed value.
type record struct {
	TypeID string `json:"typeId,omitempty" yaml:"typeId,omitempty"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type options struct {
	version    bool
	configPath string
	pk         string
	typeID     string
	format     string
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("factorytable", flag.ContinueOnError)
	opts := &options{}
	fs.BoolVar(&opts.version, "version", false, "Show version information")
	fs.BoolVar(&opts.version, "v", false, "Show version information (short)")
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.pk, "pk", "", "Partition key to read")
	fs.StringVar(&opts.typeID, "type", "", "Type-id to read through the type index")
	fs.StringVar(&opts.format, "format", "yaml", "Output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.version {
		return opts, nil
	}
	if (opts.pk == "") == (opts.typeID == "") {
		return nil, fmt.Errorf("exactly one of -pk or -type is required")
	}
	if opts.format != "yaml" && opts.format != "json" {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.version {
		info := factorytable.GetVersionInfo()
		fmt.Printf("factorytable version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	factorytable.SetLogger(logger)
	loaded := factorytable.Load(testmodels.Module)
	defer loaded.Unload()

	policy, err := cfg.UnknownTypePolicy()
	if err != nil {
		return err
	}
	decoder := codec.NewDecoder(factorytable.Current,
		codec.WithUnknownTypePolicy(policy),
		codec.WithLogger(logger))

	store, err := ddb.NewDynamodbDataStore(ctx,
		cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Region, cfg.AWS.Endpoint, cfg.AWS.Table,
		decoder, ddb.WithLogger(logger))
	if err != nil {
		return err
	}

	var records []record
	if opts.typeID != "" {
		values, err := store.QueryByType(ctx, opts.typeID)
		if err != nil {
			return err
		}
		for _, v := range values {
			records = append(records, record{TypeID: opts.typeID, Value: v})
		}
	} else {
		for r := range store.Stream(ctx, storagemodels.PartitionQuery(opts.pk), cfg.StreamOptions()...) {
			rec := record{TypeID: r.TypeID, Value: r.Item}
			if r.Error != nil {
				rec.Error = r.Error.Error()
				logger.Warn("item not decoded", zap.String("typeId", r.TypeID), zap.Error(r.Error))
			}
			records = append(records, rec)
		}
	}

	logger.Debug("query complete", zap.Int("values", len(records)))
	return render(out, opts.format, records)
}

func render(w io.Writer, format string, records []record) error {
	if records == nil {
		records = []record{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
}
