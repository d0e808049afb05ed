package model

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/httpclient"
)

const (
	// partialSuffix marks in-flight download data next to the final file.
	partialSuffix = ".download"

	// minModelSize is the sanity floor for an unpinned model file. Even the
	// tiny model is tens of MiB; anything under this is an error page.
	minModelSize = 1 << 20

	copyBufSize = 256 * 1024
)

// ggmlMagic is the first four bytes of a ggml model file (0x67676d6c,
// little-endian on disk).
var ggmlMagic = []byte{0x6c, 0x6d, 0x67, 0x67}

// fetch streams info.URL into the partial file next to finalPath, resuming
// any existing partial data. Verification and the rename into place are the
// caller's job. onProgress is called with fetched and total byte counts;
// total is zero when the server did not advertise a length.
func (m *Manager) fetch(ctx context.Context, info Info, finalPath string, onProgress func(fetched, total int64)) error {
	partial := finalPath + partialSuffix

	var offset int64
	if st, err := os.Stat(partial); err == nil {
		offset = st.Size()
	}

	headers := map[string]string{}
	if offset > 0 {
		headers["Range"] = fmt.Sprintf("bytes=%d-", offset)
	}

	stream, err := m.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    info.URL,
		Headers: headers,
	})
	if err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}
	defer stream.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch stream.StatusCode {
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusOK:
		// Server ignored the Range header; start over.
		flags |= os.O_TRUNC
		offset = 0
	default:
		return apperrors.DownloadFailed(info.ID,
			fmt.Errorf("unexpected status %d", stream.StatusCode))
	}

	total := offset
	if cl, parseErr := strconv.ParseInt(stream.Headers["Content-Length"], 10, 64); parseErr == nil && cl > 0 {
		total = offset + cl
	}

	f, err := os.OpenFile(partial, flags, 0o644)
	if err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}

	fetched := offset
	buf := make([]byte, copyBufSize)
	for {
		if ctx.Err() != nil {
			f.Close()
			return apperrors.Cancelled("model download")
		}
		n, readErr := stream.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				f.Close()
				return apperrors.DownloadFailed(info.ID, writeErr)
			}
			fetched += int64(n)
			m.metrics.AddDownloadBytes(ctx, info.ID, int64(n))
			onProgress(fetched, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			if ctx.Err() != nil {
				return apperrors.Cancelled("model download")
			}
			return apperrors.DownloadFailed(info.ID, readErr)
		}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return apperrors.DownloadFailed(info.ID, err)
	}
	f.Close()
	return nil
}

// finalize verifies the partial file and renames it into place.
func finalize(partial, finalPath string, info Info) error {
	if err := verify(partial, info); err != nil {
		// Corrupt data would poison the next resume attempt.
		os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, finalPath); err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}
	return nil
}

// verify checks the downloaded file: the pinned SHA-256 digest when the
// catalog carries one, otherwise a size floor and the ggml magic.
func verify(path string, info Info) error {
	if info.SHA256 != "" {
		sum, err := fileSHA256(path)
		if err != nil {
			return apperrors.DownloadFailed(info.ID, err)
		}
		if sum != info.SHA256 {
			return apperrors.ChecksumMismatch(info.ID).
				WithDetail("expected", info.SHA256).
				WithDetail("actual", sum)
		}
		return nil
	}

	st, err := os.Stat(path)
	if err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}
	if st.Size() < minModelSize {
		return apperrors.DownloadFailed(info.ID,
			fmt.Errorf("file is %d bytes, too small for a model", st.Size()))
	}
	f, err := os.Open(path)
	if err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}
	defer f.Close()
	magic := make([]byte, len(ggmlMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return apperrors.DownloadFailed(info.ID, err)
	}
	if !bytes.Equal(magic, ggmlMagic) {
		return apperrors.DownloadFailed(info.ID,
			fmt.Errorf("file does not look like a ggml model"))
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
