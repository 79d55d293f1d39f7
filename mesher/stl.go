// Copyright (c) 2026 The voxtree authors
// SPDX-License-Identifier: MIT

package mesher

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// WriteSTL writes the triangles to w in binary STL, little endian:
// an 80 byte header, a uint32 face count, then per face a unit normal,
// three vertices and a zero attribute word.
func WriteSTL(w io.Writer, tris []Triangle) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "voxtree binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return errors.Wrap(err, "writing STL header")
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return errors.Wrap(err, "writing STL face count")
	}

	buf := make([]byte, 50) // normal + 3 vertices + attribute
	for i, tri := range tris {
		n := tri.Normal()
		if l := n.Norm(); l > 0 {
			n = n.Mul(1 / l)
		}
		putVec(buf[0:], n)
		putVec(buf[12:], tri[0])
		putVec(buf[24:], tri[1])
		putVec(buf[36:], tri[2])
		buf[48], buf[49] = 0, 0
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrapf(err, "writing STL face %d", i)
		}
	}

	return errors.Wrap(bw.Flush(), "flushing STL output")
}

// SaveSTL writes the triangles to a new file at path.
func SaveSTL(path string, tris []Triangle) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating STL file")
	}
	if err := WriteSTL(f, tris); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

func putVec(b []byte, v r3.Vector) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
