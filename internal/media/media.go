package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameAttempts = 1000

var (
	ErrTooManyFiles   = errors.New("too many files")
	ErrDownloadFailed = errors.New("download failed")
)

// Ingestor stores uploaded and downloaded photos as flat files under one
// directory and hands back names relative to it.
type Ingestor struct {
	dir      string
	maxFiles int
	client   *http.Client
	now      func() time.Time
}

func New(dir string, maxFiles int, client *http.Client) (*Ingestor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	return &Ingestor{
		dir:      dir,
		maxFiles: maxFiles,
		client:   client,
		now:      time.Now,
	}, nil
}

func (i *Ingestor) Dir() string {
	return i.dir
}

// ImportFromURL downloads link into the uploads dir. The file is always
// named photo<unix-millis>.jpg whatever the remote content type is. When
// that name is taken the next millisecond is tried.
func (i *Ingestor) ImportFromURL(ctx context.Context, link string) (string, error) {
	const op = "media.ImportFromURL"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrDownloadFailed, err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: %w: remote returned %s", op, ErrDownloadFailed, resp.Status)
	}

	millis := i.now().UnixMilli()

	for attempt := int64(0); attempt < maxNameAttempts; attempt++ {
		name := fmt.Sprintf("photo%d.jpg", millis+attempt)

		err = i.write(name, resp.Body)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		return name, nil
	}

	return "", fmt.Errorf("%s: no free file name after %d attempts", op, maxNameAttempts)
}

// AcceptUploads stores each file under a random name that keeps the
// original extension, in request order.
func (i *Ingestor) AcceptUploads(files []*multipart.FileHeader) ([]string, error) {
	const op = "media.AcceptUploads"

	if len(files) > i.maxFiles {
		return nil, fmt.Errorf("%s: %w: got %d, limit %d", op, ErrTooManyFiles, len(files), i.maxFiles)
	}

	names := make([]string, 0, len(files))

	for _, fh := range files {
		name := storedName(fh.Filename)

		if err := i.store(name, fh); err != nil {
			i.remove(names)
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		names = append(names, name)
	}

	return names, nil
}

func (i *Ingestor) store(name string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	return i.write(name, src)
}

func (i *Ingestor) write(name string, r io.Reader) error {
	path := filepath.Join(i.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err = io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err = dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	return nil
}

// remove deletes files stored earlier in a request that failed.
func (i *Ingestor) remove(names []string) {
	for _, name := range names {
		_ = os.Remove(filepath.Join(i.dir, name))
	}
}

// storedName is a random hex base plus the last dot separated segment of
// the client file name. A name without a dot is used whole as the
// extension.
func storedName(original string) string {
	parts := strings.Split(original, ".")
	ext := parts[len(parts)-1]

	// the extension must not escape the uploads dir
	if idx := strings.LastIndexAny(ext, `/\`); idx >= 0 {
		ext = ext[idx+1:]
	}

	return strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext
}
