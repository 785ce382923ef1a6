package manifeststore

import (
	"context"

	"github.com/buildbarn/blake3-merkle/pkg/digest"
	"github.com/buildbarn/blake3-merkle/pkg/merkle"
	"github.com/buildbarn/blake3-merkle/pkg/util"

	bolt "go.etcd.io/bbolt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bucketManifests maps keys to marshaled manifests.
var bucketManifests = []byte("manifests")

type boltManifestStore struct {
	db         *bolt.DB
	treeHasher merkle.TreeHasher
}

// NewBoltManifestStore creates a ManifestStore that is backed by a
// Bolt key-value database. Manifests are validated when read, using
// the provided TreeHasher.
func NewBoltManifestStore(db *bolt.DB, treeHasher merkle.TreeHasher) (ManifestStore, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketManifests)
		return err
	}); err != nil {
		return nil, util.StatusWrapWithCode(err, codes.Internal, "Failed to create manifests bucket")
	}
	return &boltManifestStore{
		db:         db,
		treeHasher: treeHasher,
	}, nil
}

func (ms *boltManifestStore) Get(ctx context.Context, key string) (*digest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, util.StatusFromContext(ctx)
	}
	var manifest *digest.Manifest
	if err := ms.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketManifests).Get([]byte(key))
		if data == nil {
			return status.Errorf(codes.NotFound, "No manifest exists for key %#v", key)
		}
		// UnmarshalManifest() copies all hashes, meaning the
		// result remains valid after the transaction completes.
		m, err := digest.UnmarshalManifest(ms.treeHasher, data)
		if err != nil {
			return util.StatusWrapf(err, "Failed to unmarshal manifest for key %#v", key)
		}
		manifest = m
		return nil
	}); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (ms *boltManifestStore) Put(ctx context.Context, key string, manifest *digest.Manifest) error {
	if err := ctx.Err(); err != nil {
		return util.StatusFromContext(ctx)
	}
	if err := ms.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketManifests).Put([]byte(key), manifest.Marshal())
	}); err != nil {
		if _, ok := status.FromError(err); ok {
			return err
		}
		return util.StatusWrapWithCode(err, codes.Internal, "Failed to store manifest")
	}
	return nil
}
