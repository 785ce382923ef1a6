package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buildbarn/blake3-merkle/pkg/merkle"
	"github.com/stretchr/testify/require"
	reference "github.com/zeebo/blake3"
	"lukechampine.com/frand"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func runCommand(t *testing.T, stdin []byte, args ...string) (string, error) {
	return runCommandWithTreeHasher(t, nil, stdin, args...)
}

func runCommandWithTreeHasher(t *testing.T, treeHasher merkle.TreeHasher, stdin []byte, args ...string) (string, error) {
	c := newCommand()
	if treeHasher != nil {
		c.treeHasher = treeHasher
	}
	var stdout, stderr bytes.Buffer
	c.root.SetIn(bytes.NewReader(stdin))
	c.root.SetOut(&stdout)
	c.root.SetErr(&stderr)
	c.root.SetArgs(args)
	err := c.Execute()
	return stdout.String(), err
}

func makeTempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "blake3_merkle")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func writeFile(t *testing.T, path string, data []byte) {
	require.NoError(t, ioutil.WriteFile(path, data, 0o644))
}

// faultyTreeHasher computes incorrect root hashes.
type faultyTreeHasher struct {
	merkle.TreeHasher
}

func (th faultyTreeHasher) Combine(left *merkle.Hash, right *merkle.Hash, isRoot bool) merkle.Hash {
	h := th.TreeHasher.Combine(left, right, isRoot)
	if isRoot {
		h[0] ^= 1
	}
	return h
}

func TestHashCommand(t *testing.T) {
	dir := makeTempDir(t)

	t.Run("Stdin", func(t *testing.T) {
		stdout, err := runCommand(t, []byte("Hello"), "hash")
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%x-5  -\n", reference.Sum256([]byte("Hello"))), stdout)
	})

	t.Run("VerifyFiles", func(t *testing.T) {
		data := frand.Bytes(3*1024*1024 + 1234)
		path := filepath.Join(dir, "random.bin")
		writeFile(t, path, data)
		emptyPath := filepath.Join(dir, "empty.bin")
		writeFile(t, emptyPath, nil)

		stdout, err := runCommand(t, nil, "hash", "--verify", "--block-depth", "3", path, emptyPath)
		require.NoError(t, err)
		require.Equal(
			t,
			fmt.Sprintf("%x-%d  %s\n%x-0  %s\n", reference.Sum256(data), len(data), path, reference.Sum256(nil), emptyPath),
			stdout)
	})

	t.Run("VerifyDetectsFaultyTreeHasher", func(t *testing.T) {
		// A fault in the tree hash must cause verification to
		// fail, as the whole file hash is computed separately.
		data := frand.Bytes(5000)
		path := filepath.Join(dir, "faulty.bin")
		writeFile(t, path, data)

		_, err := runCommandWithTreeHasher(t, faultyTreeHasher{TreeHasher: merkle.NewBLAKE3TreeHasher()}, nil, "hash", "--verify", path)
		require.Equal(t, codes.Internal, status.Code(err))
		require.Contains(t, status.Convert(err).Message(), fmt.Sprintf("differs from whole file hash %x", reference.Sum256(data)))

		// Without verification, the faulty digest goes unnoticed.
		_, err = runCommandWithTreeHasher(t, faultyTreeHasher{TreeHasher: merkle.NewBLAKE3TreeHasher()}, nil, "hash", path)
		require.NoError(t, err)
	})

	t.Run("Blocks", func(t *testing.T) {
		path := filepath.Join(dir, "blocks.bin")
		writeFile(t, path, bytes.Repeat([]byte("x"), 5000))

		stdout, err := runCommand(t, nil, "hash", "--blocks", "--block-depth", "1", path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		require.Len(t, lines, 4)
		require.True(t, strings.HasPrefix(lines[1], "  0\t0\t2048\t1\t"))
		require.True(t, strings.HasPrefix(lines[2], "  1\t2048\t2048\t1\t"))
		require.True(t, strings.HasPrefix(lines[3], "  2\t4096\t904\t0\t"))
	})

	t.Run("NonexistentFile", func(t *testing.T) {
		_, err := runCommand(t, nil, "hash", filepath.Join(dir, "nonexistent"))
		require.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("InvalidBlockDepth", func(t *testing.T) {
		_, err := runCommand(t, []byte("Hello"), "hash", "--block-depth", "40")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("InvalidVerbosity", func(t *testing.T) {
		_, err := runCommand(t, nil, "hash", "--verbosity", "loud")
		require.Equal(t, status.Error(codes.InvalidArgument, "Unknown log level \"loud\""), err)
	})
}

func TestConfiguration(t *testing.T) {
	dir := makeTempDir(t)
	metricsPath := filepath.Join(dir, "metrics.prom")
	configPath := filepath.Join(dir, "config.jsonnet")
	writeFile(t, configPath, []byte(fmt.Sprintf(`{
  blockDepth: 1,
  readChunkSizeBytes: 100,
  manifestStorePath: %q,
  metricsTextfilePath: %q,
  logLevel: 'debug',
}`, filepath.Join(dir, "manifests.db"), metricsPath)))

	t.Run("Success", func(t *testing.T) {
		_, err := runCommand(t, bytes.Repeat([]byte("y"), 10000), "--config", configPath, "hash")
		require.NoError(t, err)

		metrics, err := ioutil.ReadFile(metricsPath)
		require.NoError(t, err)
		require.Contains(t, string(metrics), "buildbarn_merkle_tree_hasher_combines_total")
	})

	t.Run("UnknownField", func(t *testing.T) {
		badConfigPath := filepath.Join(dir, "bad.jsonnet")
		writeFile(t, badConfigPath, []byte(`{ blockSize: 5 }`))
		_, err := runCommand(t, nil, "--config", badConfigPath, "hash")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("InvalidReadChunkSize", func(t *testing.T) {
		badConfigPath := filepath.Join(dir, "zero.jsonnet")
		writeFile(t, badConfigPath, []byte(`{ readChunkSizeBytes: 0 }`))
		_, err := runCommand(t, nil, "--config", badConfigPath, "hash")
		require.Equal(t, status.Error(codes.InvalidArgument, "Read chunk size must be positive, while 0 was provided"), err)
	})
}

func TestIndexCommand(t *testing.T) {
	dir := makeTempDir(t)
	configPath := filepath.Join(dir, "config.jsonnet")
	writeFile(t, configPath, []byte(fmt.Sprintf(`{ manifestStorePath: %q }`, filepath.Join(dir, "manifests.db"))))
	path := filepath.Join(dir, "data.bin")
	data := frand.Bytes(10 * 2048)
	writeFile(t, path, data)

	t.Run("Initial", func(t *testing.T) {
		stdout, err := runCommand(t, nil, "--config", configPath, "--block-depth", "1", "index", path)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%x-%d  %s  10/10 blocks changed\n", reference.Sum256(data), len(data), path), stdout)
	})

	t.Run("Unchanged", func(t *testing.T) {
		stdout, err := runCommand(t, nil, "--config", configPath, "--block-depth", "1", "index", path)
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(stdout, "  0/10 blocks changed\n"))
	})

	t.Run("Modified", func(t *testing.T) {
		data[3*2048+17] ^= 0x01
		writeFile(t, path, data)
		stdout, err := runCommand(t, nil, "--config", configPath, "--block-depth", "1", "index", path)
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(stdout, "  1/10 blocks changed\n"))
	})

	t.Run("NoFiles", func(t *testing.T) {
		_, err := runCommand(t, nil, "--config", configPath, "index")
		require.Error(t, err)
	})
}
