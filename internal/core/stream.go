package core

import (
	"errors"
	"io"
	"syscall"

	"github.com/brettbedarf/roottools"
)

// copyContents copies src into dst through buf until EOF. Interrupted reads
// and writes are retried and short writes are resumed, so every byte read is
// stored before the next read. Returns the number of bytes written.
func copyContents(dst io.Writer, src io.Reader, buf []byte, srcPath, dstPath string) (int64, error) {
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if err := writeFull(dst, buf[:n]); err != nil {
				return total, roottools.NewOpError("write", dstPath, err)
			}
			total += int64(n)
		}
		switch {
		case rerr == nil, errors.Is(rerr, syscall.EINTR):
			continue
		case rerr == io.EOF:
			return total, nil
		default:
			return total, roottools.NewOpError("read", srcPath, rerr)
		}
	}
}

func writeFull(dst io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := dst.Write(p)
		p = p[n:]
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
