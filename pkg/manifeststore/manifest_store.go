package manifeststore

import (
	"context"

	"github.com/buildbarn/blake3-merkle/pkg/digest"
)

// ManifestStore persists the manifests of blobs, so that a later
// version of a blob can be compared against an earlier one.
type ManifestStore interface {
	Get(ctx context.Context, key string) (*digest.Manifest, error)
	Put(ctx context.Context, key string, manifest *digest.Manifest) error
}
