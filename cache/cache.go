// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/matrix"
	"github.com/katalvlaran/lvdecomp/render"
)

// Store keeps rendered decompositions by Key.
type Store interface {
	// Get reports found=false on a miss; a miss is not an error.
	Get(ctx context.Context, key string) (doc *render.Document, found bool, err error)
	Set(ctx context.Context, key string, doc *render.Document) error
	Close() error
}

// Key derives the cache key of decomposing m with method: a hex sha256 over
// the method name, the shape and the IEEE-754 bits of every entry.
func Key(method decompose.Method, m matrix.Matrix) (string, error) {
	rows, err := matrix.Rows2D(m)
	if err != nil {
		return "", fmt.Errorf("cache.Key: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(method.String()))
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(m.Rows()))
	binary.LittleEndian.PutUint32(buf[4:], uint32(m.Cols()))
	h.Write(buf[:])
	for _, row := range rows {
		for _, v := range row {
			if v == 0 {
				v = 0 // -0 and +0 share a key
			}
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Noop is the Store used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*render.Document, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *render.Document) error         { return nil }
func (Noop) Close() error                                                { return nil }
