package buffer

import (
	"io"
)

// IntoWriter copies all data returned by a ChunkReader into a Writer.
// The ChunkReader is closed upon completion.
func IntoWriter(r ChunkReader, w io.Writer) error {
	defer r.Close()

	for {
		chunk, err := r.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
}
