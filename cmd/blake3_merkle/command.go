package main

import (
	"io/ioutil"
	"os"

	"github.com/buildbarn/blake3-merkle/pkg/blobstore/buffer"
	"github.com/buildbarn/blake3-merkle/pkg/digest"
	"github.com/buildbarn/blake3-merkle/pkg/merkle"
	"github.com/buildbarn/blake3-merkle/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	optionNameConfig     = "config"
	optionNameVerbosity  = "verbosity"
	optionNameBlockDepth = "block-depth"
)

type command struct {
	root *cobra.Command

	configFile    string
	verbosity     string
	blockDepth    int
	configuration ApplicationConfiguration
	logger        *logrus.Logger
	treeHasher    merkle.TreeHasher
}

func newCommand() *command {
	c := &command{
		treeHasher: merkle.NewMetricsTreeHasher(merkle.NewBLAKE3TreeHasher(), "blake3_merkle"),
	}
	c.root = &cobra.Command{
		Use:           "blake3_merkle",
		Short:         "Compute BLAKE3 hashes of files and the blocks they consist of",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfiguration(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.configFile, optionNameConfig, "", "Jsonnet configuration file")
	flags.StringVar(&c.verbosity, optionNameVerbosity, "", "log verbosity level (error, warn, info, debug, trace)")
	flags.IntVar(&c.blockDepth, optionNameBlockDepth, 0, "blocks span 2^block-depth units of 1 KiB")

	c.initHashCmd()
	c.initIndexCmd()
	return c
}

func (c *command) Execute() error {
	return c.root.Execute()
}

func (c *command) initConfiguration(cmd *cobra.Command) error {
	c.configuration = newDefaultConfiguration()
	if c.configFile != "" {
		if err := util.UnmarshalConfigurationFromFile(c.configFile, &c.configuration); err != nil {
			return util.StatusWrapf(err, "Failed to read configuration from %#v", c.configFile)
		}
	}

	// Command line flags take precedence.
	if cmd.Flags().Changed(optionNameVerbosity) {
		c.configuration.LogLevel = c.verbosity
	}
	if cmd.Flags().Changed(optionNameBlockDepth) {
		c.configuration.BlockDepth = c.blockDepth
	}
	if c.configuration.ReadChunkSizeBytes <= 0 {
		return status.Errorf(codes.InvalidArgument, "Read chunk size must be positive, while %d was provided", c.configuration.ReadChunkSizeBytes)
	}

	level, err := logrus.ParseLevel(c.configuration.LogLevel)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "Unknown log level %#v", c.configuration.LogLevel)
	}
	c.logger = logrus.New()
	c.logger.SetOutput(cmd.ErrOrStderr())
	c.logger.SetLevel(level)
	c.logger.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return nil
}

func (c *command) writeMetrics() error {
	path := c.configuration.MetricsTextfilePath
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return util.StatusWrapWithCode(err, codes.Internal, "Failed to write metrics")
	}
	c.logger.WithField("path", path).Debug("Wrote metrics")
	return nil
}

// openInput opens a file for reading. The path "-" refers to standard
// input.
func (c *command) openInput(cmd *cobra.Command, path string) (buffer.ChunkReader, error) {
	chunkPolicy := buffer.ChunkSizeAtMost(c.configuration.ReadChunkSizeBytes)
	if path == "-" {
		return buffer.NewChunkReaderFromReader(ioutil.NopCloser(cmd.InOrStdin()), chunkPolicy), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, util.StatusWrapWithCode(err, codes.NotFound, "Failed to open input")
	}
	return buffer.NewChunkReaderFromReader(f, chunkPolicy), nil
}

// computeManifest streams a file through a Builder, yielding the
// manifest of the file. Any additional writers are provided with the
// same data.
func (c *command) computeManifest(cmd *cobra.Command, path string, extraWriter func(p []byte)) (*digest.Manifest, error) {
	r, err := c.openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	builder, err := merkle.NewBuilder(c.treeHasher, c.configuration.BlockDepth)
	if err != nil {
		r.Close()
		return nil, err
	}
	var w writerFunc = func(p []byte) (int, error) {
		if extraWriter != nil {
			extraWriter(p)
		}
		return builder.Write(p)
	}
	if err := buffer.IntoWriter(r, w); err != nil {
		return nil, err
	}
	if err := builder.Finalize(); err != nil {
		return nil, err
	}
	return digest.NewManifest(c.treeHasher, builder)
}
