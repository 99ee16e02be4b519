package pyversions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"pkt.systems/pslog"
)

// ProgressFunc observes download progress. total is -1 when the server did
// not report a content length.
type ProgressFunc func(written, total int64)

// Download fetches url into dest, reporting progress per chunk. Unlike
// version resolution this does not degrade: a failed download is an error the
// caller reports and the operation stops.
func (r *Resolver) Download(ctx context.Context, url, dest string, progress ProgressFunc) error {
	log := pslog.Ctx(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	// The index client's timeout would cut a large installer short, so the
	// download uses its own client with no overall deadline.
	resp, err := r.download.Do(req)
	if err != nil {
		log.Warn("installer download failed", "url", url, "err", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("installer download failed", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}

	total := resp.ContentLength
	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				_ = file.Close()
				_ = os.Remove(dest)
				return writeErr
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			_ = file.Close()
			_ = os.Remove(dest)
			return readErr
		}
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Debug("installer download ok", "dest", dest, "bytes", written)
	return nil
}
