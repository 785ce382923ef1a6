package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/buildbarn/blake3-merkle/pkg/digest"
	"github.com/buildbarn/blake3-merkle/pkg/manifeststore"
	"github.com/buildbarn/blake3-merkle/pkg/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	bolt "go.etcd.io/bbolt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (c *command) initIndexCmd() {
	cmd := &cobra.Command{
		Use:   "index file ...",
		Short: "Store block hashes of files and report which blocks changed",
		Long: `Compute the block hashes of files and compare them against the ones
stored by a previous invocation. Indices of blocks that changed are
printed, after which the new block hashes are stored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := bolt.Open(c.configuration.ManifestStorePath, 0o600, &bolt.Options{Timeout: time.Second})
			if err != nil {
				return util.StatusWrapWithCode(err, codes.Unavailable, "Failed to open manifest store")
			}
			defer db.Close()

			ctx := context.Background()

			store, err := manifeststore.NewBoltManifestStore(db, c.treeHasher)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := c.indexFile(ctx, cmd, store, path); err != nil {
					return util.StatusWrap(err, path)
				}
			}
			return nil
		},
	}
	c.root.AddCommand(cmd)
}

func (c *command) indexFile(ctx context.Context, cmd *cobra.Command, store manifeststore.ManifestStore, path string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to obtain absolute path")
	}
	newManifest, err := c.computeManifest(cmd, path, nil)
	if err != nil {
		return err
	}

	oldManifest, err := store.Get(ctx, key)
	if status.Code(err) == codes.NotFound {
		oldManifest = nil
	} else if err != nil {
		c.logger.WithError(err).WithField("path", key).Warn("Discarding unreadable manifest")
		oldManifest = nil
	}

	changed := digest.GetChangedBlocks(oldManifest, newManifest)
	logger := c.logger.WithFields(logrus.Fields{
		"path":   key,
		"digest": newManifest.GetDigest().String(),
	})
	for _, index := range changed {
		offsetBytes, _ := newManifest.GetBlockRange(index)
		blockDigest, _, err := newManifest.GetBlockDigest(offsetBytes)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"block":  index,
			"offset": offsetBytes,
			"hash":   blockDigest.String(),
		}).Debug("Block changed")
	}
	logger.WithFields(logrus.Fields{
		"blocks":  newManifest.GetBlockCount(),
		"changed": len(changed),
	}).Info("Indexed file")
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d/%d blocks changed\n", newManifest.GetDigest(), path, len(changed), newManifest.GetBlockCount())

	return store.Put(ctx, key, newManifest)
}
