package digest

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/buildbarn/blake3-merkle/pkg/merkle"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Digest holds the identification of a blob of data: its BLAKE3 hash
// value and its size. Instances of these objects are guaranteed not to
// contain any degenerate values. The hash has already been validated
// and the size is non-negative.
//
// Digests are rendered as "${hash}-${size}", which is also the
// representation that is stored internally, so that Digest objects can
// be used as map keys.
type Digest struct {
	value string
}

// BadDigest is a default instance of Digest. It can, for example, be
// used as a function return value for error cases.
var BadDigest Digest

// Unpack the hash and size fields from the string representation
// stored inside the Digest object.
func (d Digest) unpack() (int, int64) {
	hashEnd := merkle.HashSizeBytes * 2
	sizeBytes := int64(0)
	for _, c := range d.value[hashEnd+1:] {
		sizeBytes = sizeBytes*10 + int64(c-'0')
	}
	return hashEnd, sizeBytes
}

// NewDigest constructs a Digest object from a hexadecimal hash and an
// object size. The instance returned by this function is guaranteed to
// be non-degenerate.
func NewDigest(hash string, sizeBytes int64) (Digest, error) {
	// Validate the size.
	if sizeBytes < 0 {
		return BadDigest, status.Errorf(codes.InvalidArgument, "Invalid digest size: %d bytes", sizeBytes)
	}

	// Validate the hash.
	if l := len(hash); l != merkle.HashSizeBytes*2 {
		return BadDigest, status.Errorf(codes.InvalidArgument, "Unknown digest hash length: %d characters", l)
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return BadDigest, status.Errorf(codes.InvalidArgument, "Non-hexadecimal character in digest hash: %#U", c)
		}
	}
	return Digest{
		value: fmt.Sprintf("%s-%d", hash, sizeBytes),
	}, nil
}

// MustNewDigest constructs a Digest similar to NewDigest, but never
// returns an error. Instead, execution will abort if the resulting
// instance would be degenerate. Useful for unit testing.
func MustNewDigest(hash string, sizeBytes int64) Digest {
	d, err := NewDigest(hash, sizeBytes)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDigestFromHash constructs a Digest from a binary hash value, as
// returned by merkle.Builder.
func NewDigestFromHash(hash merkle.Hash, sizeBytes int64) (Digest, error) {
	return NewDigest(hash.String(), sizeBytes)
}

// NewDigestFromString parses the representation of a digest that is
// returned by Digest.String().
func NewDigestFromString(s string) (Digest, error) {
	separator := strings.LastIndexByte(s, '-')
	if separator < 0 {
		return BadDigest, status.Errorf(codes.InvalidArgument, "Digest %#v does not have the format ${hash}-${size}", s)
	}
	sizeBytes, err := strconv.ParseInt(s[separator+1:], 10, 64)
	if err != nil {
		return BadDigest, status.Errorf(codes.InvalidArgument, "Invalid digest size %#v", s[separator+1:])
	}
	return NewDigest(s[:separator], sizeBytes)
}

// GetHashString returns the hash of the object as a hexadecimal string.
func (d Digest) GetHashString() string {
	hashEnd, _ := d.unpack()
	return d.value[:hashEnd]
}

// GetHashBytes returns the hash of the object as a slice of bytes.
func (d Digest) GetHashBytes() []byte {
	hashBytes, err := hex.DecodeString(d.GetHashString())
	if err != nil {
		panic("Failed to decode digest hash, even though its contents have already been validated")
	}
	return hashBytes
}

// GetHash returns the hash of the object in the form used by
// merkle.Builder.
func (d Digest) GetHash() (h merkle.Hash) {
	copy(h[:], d.GetHashBytes())
	return
}

// GetSizeBytes returns the size of the object, in bytes.
func (d Digest) GetSizeBytes() int64 {
	_, sizeBytes := d.unpack()
	return sizeBytes
}

func (d Digest) String() string {
	return d.value
}
