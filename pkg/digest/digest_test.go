package digest_test

import (
	"testing"

	"github.com/buildbarn/blake3-merkle/pkg/digest"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const emptyHash = "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"

func TestNewDigest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d, err := digest.NewDigest(emptyHash, 0)
		require.NoError(t, err)
		require.Equal(t, emptyHash, d.GetHashString())
		require.Equal(t, int64(0), d.GetSizeBytes())
		require.Equal(t, emptyHash+"-0", d.String())
		require.Len(t, d.GetHashBytes(), 32)
		require.Equal(t, byte(0xaf), d.GetHashBytes()[0])
		require.Equal(t, emptyHash, d.GetHash().String())
	})

	t.Run("NegativeSize", func(t *testing.T) {
		_, err := digest.NewDigest(emptyHash, -1)
		require.Equal(t, status.Error(codes.InvalidArgument, "Invalid digest size: -1 bytes"), err)
	})

	t.Run("BadHashLength", func(t *testing.T) {
		_, err := digest.NewDigest("af1349b9", 123)
		require.Equal(t, status.Error(codes.InvalidArgument, "Unknown digest hash length: 8 characters"), err)
	})

	t.Run("UppercaseHash", func(t *testing.T) {
		_, err := digest.NewDigest("AF1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", 123)
		require.Equal(t, status.Error(codes.InvalidArgument, "Non-hexadecimal character in digest hash: U+0041 'A'"), err)
	})
}

func TestMustNewDigest(t *testing.T) {
	require.Panics(t, func() {
		digest.MustNewDigest("xyz", 5)
	})
	require.Equal(t, int64(5), digest.MustNewDigest(emptyHash, 5).GetSizeBytes())
}

func TestNewDigestFromString(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d, err := digest.NewDigestFromString(emptyHash + "-1048576")
		require.NoError(t, err)
		require.Equal(t, digest.MustNewDigest(emptyHash, 1048576), d)
		require.Equal(t, int64(1048576), d.GetSizeBytes())
	})

	t.Run("NoSeparator", func(t *testing.T) {
		_, err := digest.NewDigestFromString(emptyHash)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("BadSize", func(t *testing.T) {
		_, err := digest.NewDigestFromString(emptyHash + "-12x")
		require.Equal(t, status.Error(codes.InvalidArgument, "Invalid digest size \"12x\""), err)
	})

	t.Run("NegativeSize", func(t *testing.T) {
		_, err := digest.NewDigestFromString(emptyHash + "--5")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
