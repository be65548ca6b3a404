package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-latticegraph/pkg/conduction"
	"github.com/dd0wney/cluso-latticegraph/pkg/config"
	"github.com/dd0wney/cluso-latticegraph/pkg/export"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
	"github.com/dd0wney/cluso-latticegraph/pkg/logging"
	"github.com/dd0wney/cluso-latticegraph/pkg/metrics"
	"github.com/dd0wney/cluso-latticegraph/pkg/sink"
)

type buildFlags struct {
	configPath    string
	structure     string
	axis          int
	cutoff        float64
	translation   []float64
	output        string
	format        string
	compress      bool
	runID         string
	logLevel      string
	metricsFile   string
	s3Bucket      string
	s3Key         string
	neo4jURI      string
	failOnWarning bool
}

// warningError is returned when --fail-on-warning is set and the run warned
type warningError struct {
	count int
}

func (e *warningError) Error() string {
	return fmt.Sprintf("run finished with %d warnings", e.count)
}

func newBuildCmd() *cobra.Command {
	f := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the extraction pipeline and export the network",
		Long: `Loads a run file (--config) and/or flags, extracts the conduction network of
the structure and writes it to --output. Flags override the run file.`,
		Example: `  latticegraph build --structure cells/zn.yaml --cutoff 6.5 --output out/network.json
  latticegraph build -c run.yaml --compress --s3-bucket runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML run file")
	fl.StringVarP(&f.structure, "structure", "s", "", "YAML structure document")
	fl.IntVar(&f.axis, "axis", 0, "conduction axis (0, 1 or 2)")
	fl.Float64Var(&f.cutoff, "cutoff", 0, "neighbor cutoff radius")
	fl.Float64SliceVar(&f.translation, "translation", nil, "cartesian translation x,y,z")
	fl.StringVarP(&f.output, "output", "o", "", "export file path")
	fl.StringVar(&f.format, "format", "", "export format (json|yaml)")
	fl.BoolVar(&f.compress, "compress", false, "snappy-compress the export")
	fl.StringVar(&f.runID, "run-id", "", "run id (generated when empty)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fl.StringVar(&f.s3Bucket, "s3-bucket", "", "upload the export to this bucket")
	fl.StringVar(&f.s3Key, "s3-key", "", "object key (default <run-id>/<file name>)")
	fl.StringVar(&f.neo4jURI, "neo4j-uri", "", "publish the network to this Neo4j instance")
	fl.BoolVar(&f.failOnWarning, "fail-on-warning", false, "exit with status 2 when the run warns")
	return cmd
}

// resolveConfig loads the run file and applies the flags that were set
func resolveConfig(cmd *cobra.Command, f *buildFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("structure") {
		cfg.Structure = f.structure
	}
	if changed("axis") {
		cfg.Axis = f.axis
	}
	if changed("cutoff") {
		cfg.Cutoff = f.cutoff
	}
	if changed("translation") {
		if len(f.translation) != 3 {
			return config.Config{}, fmt.Errorf("--translation needs 3 values, got %d", len(f.translation))
		}
		cfg.Translation = lattice.Vec3{f.translation[0], f.translation[1], f.translation[2]}
	}
	if changed("output") {
		cfg.Output.Path = f.output
	}
	if changed("format") {
		cfg.Output.Format = strings.ToLower(f.format)
	}
	if changed("compress") {
		cfg.Output.Compress = f.compress
	}
	if changed("log-level") {
		cfg.Logging.Level = strings.ToLower(f.logLevel)
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if changed("s3-bucket") {
		cfg.S3.Bucket = f.s3Bucket
	}
	if changed("s3-key") {
		cfg.S3.Key = f.s3Key
	}
	if changed("neo4j-uri") {
		cfg.Neo4j.URI = f.neo4jURI
	}

	if cfg.Structure == "" {
		return config.Config{}, fmt.Errorf("no structure given (--structure or structure: in the run file)")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, f *buildFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Logging.Level))
	reg := metrics.NewRegistry()

	cell, err := lattice.LoadFile(cfg.Structure)
	if err != nil {
		return err
	}
	logger.Info("structure loaded", logging.Path(cfg.Structure), logging.Count(cell.Len()))

	res, err := conduction.NewPipeline(cfg.Options(),
		conduction.WithLogger(logger),
		conduction.WithMetrics(reg),
		conduction.WithRunID(f.runID),
	).Run(cell)
	if err != nil {
		return err
	}
	doc := export.NewDocument(res)

	if cfg.Output.Path != "" {
		if err := writeOutput(cfg, doc, reg, logger); err != nil {
			return err
		}
	}
	if cfg.S3.Bucket != "" {
		if err := upload(cmd, cfg, doc.RunID, reg, logger); err != nil {
			return err
		}
	}
	if cfg.Neo4j.URI != "" {
		if err := publish(cmd, cfg, doc, reg, logger); err != nil {
			return err
		}
	}
	if cfg.Metrics.Textfile != "" {
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(doc, res.Timings, len(res.Cycles)))
	if f.failOnWarning && len(res.Warnings) > 0 {
		return &warningError{count: len(res.Warnings)}
	}
	return nil
}

func writeOutput(cfg config.Config, doc export.Document, reg *metrics.Registry, logger logging.Logger) error {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	path := outputPath(cfg)
	n, err := export.Write(path, doc, export.WriteOptions{Format: format, Compress: cfg.Output.Compress})
	reg.RecordExport("file", int(n), err)
	if err != nil {
		return err
	}
	logger.Info("network written", logging.Path(path), logging.Int("bytes", int(n)))
	return nil
}

// outputPath appends the snappy extension to compressed exports
func outputPath(cfg config.Config) string {
	if cfg.Output.Compress && !strings.HasSuffix(cfg.Output.Path, export.CompressedExt) {
		return cfg.Output.Path + export.CompressedExt
	}
	return cfg.Output.Path
}

func upload(cmd *cobra.Command, cfg config.Config, runID string, reg *metrics.Registry, logger logging.Logger) error {
	uploader, err := export.NewS3Uploader(cmd.Context(), export.S3Options{
		Bucket:   cfg.S3.Bucket,
		Region:   cfg.S3.Region,
		Endpoint: cfg.S3.Endpoint,
	})
	if err != nil {
		return err
	}

	path := outputPath(cfg)
	key := cfg.S3.Key
	if key == "" {
		key = runID + "/" + filepath.Base(path)
	}
	n, err := uploader.UploadFile(cmd.Context(), key, path)
	reg.RecordExport("s3", n, err)
	if err != nil {
		return err
	}
	logger.Info("network uploaded", logging.String("bucket", cfg.S3.Bucket), logging.String("key", key))
	return nil
}

func publish(cmd *cobra.Command, cfg config.Config, doc export.Document, reg *metrics.Registry, logger logging.Logger) error {
	ctx := cmd.Context()
	client, err := sink.NewNeo4jClient(ctx, sink.Options{
		URI:            cfg.Neo4j.URI,
		Database:       cfg.Neo4j.Database,
		Username:       cfg.Neo4j.Username,
		Password:       cfg.Neo4j.Password,
		MaxConnections: cfg.Neo4j.MaxConnections,
	})
	if err != nil {
		reg.RecordExport("neo4j", 0, err)
		return err
	}
	defer client.Close(ctx)

	err = sink.NewPublisher(client, logger, sink.DefaultBatchSize).Publish(ctx, doc)
	reg.RecordExport("neo4j", 0, err)
	return err
}
