package main

import (
	"bytes"
	"fmt"

	"github.com/buildbarn/blake3-merkle/pkg/digest"
	"github.com/buildbarn/blake3-merkle/pkg/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	optionNameVerify = "verify"
	optionNameBlocks = "blocks"
)

func (c *command) initHashCmd() {
	var verify, printBlocks bool
	cmd := &cobra.Command{
		Use:   "hash [file ...]",
		Short: "Print the BLAKE3 digests of files",
		Long: `Print the BLAKE3 digests of files, in the form ${hash}-${size}.
Standard input is read when no files are provided, or when a file is "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, path := range args {
				if err := c.hashFile(cmd, path, verify, printBlocks); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, optionNameVerify, false, "also hash files as a whole and check that both hashes are identical")
	cmd.Flags().BoolVar(&printBlocks, optionNameBlocks, false, "print the hashes of individual blocks")
	c.root.AddCommand(cmd)
}

func (c *command) hashFile(cmd *cobra.Command, path string, verify, printBlocks bool) error {
	var extraWriter func(p []byte)
	// The whole file hash is computed by an independent BLAKE3
	// implementation, so that faults in the block based hashing
	// code are detected.
	reference := blake3.New()
	if verify {
		extraWriter = func(p []byte) { reference.Write(p) }
	}
	manifest, err := c.computeManifest(cmd, path, extraWriter)
	if err != nil {
		return util.StatusWrap(err, path)
	}
	d := manifest.GetDigest()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", d, path)
	if printBlocks {
		printManifestBlocks(cmd, manifest)
	}
	c.logger.WithFields(logrus.Fields{
		"path":   path,
		"digest": d.String(),
		"blocks": manifest.GetBlockCount(),
	}).Debug("Hashed file")

	if verify {
		if referenceHash := reference.Sum(nil); !bytes.Equal(referenceHash, d.GetHashBytes()) {
			return status.Errorf(codes.Internal, "%s: Block based hash %s differs from whole file hash %x", path, d.GetHashString(), referenceHash)
		}
	}
	return nil
}

func printManifestBlocks(cmd *cobra.Command, manifest *digest.Manifest) {
	out := cmd.OutOrStdout()
	for i, block := range manifest.GetBlocks() {
		offsetBytes, sizeBytes := manifest.GetBlockRange(i)
		fmt.Fprintf(out, "  %d\t%d\t%d\t%d\t%s\n", i, offsetBytes, sizeBytes, block.Depth, block.Hash)
	}
}
