package fingerprint

import (
	"fmt"
	"io"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns the 64 bit highwayhash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// HashReader returns the 64 bit highwayhash of the reader content
func HashReader(reader io.Reader) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	if _, err = io.Copy(hash, reader); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// Hex formats a hash as 16 lowercase hex digits
func Hex(value uint64) string {
	return fmt.Sprintf("%016x", value)
}
