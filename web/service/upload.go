package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lukafrizz/content-api/util/common"
	"github.com/lukafrizz/content-api/util/random"
)

// Bucket describes one media class: its storage directory, size cap and the
// allow-list of declared MIME types it accepts.
type Bucket struct {
	Name    string
	Dir     string
	MaxSize int64
	Types   []string
}

func (b *Bucket) accepts(mimeType string) bool {
	for _, t := range b.Types {
		if t == mimeType {
			return true
		}
	}
	return false
}

var buckets = []*Bucket{
	{
		Name:    "image",
		Dir:     "images",
		MaxSize: 10 << 20,
		Types:   []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	},
	{
		Name:    "audio",
		Dir:     "audio",
		MaxSize: 50 << 20,
		Types:   []string{"audio/mpeg", "audio/wav", "audio/mp4", "audio/m4a", "audio/ogg"},
	},
	{
		Name:    "video",
		Dir:     "video",
		MaxSize: 200 << 20,
		Types:   []string{"video/mp4", "video/webm", "video/ogg", "video/avi"},
	},
	{
		Name:    "document",
		Dir:     "documents",
		MaxSize: 25 << 20,
		Types: []string{
			"application/pdf", "text/plain", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	},
}

// GetBucket resolves a bucket by name, accepting both the singular name and
// the plural directory name used in URLs.
func GetBucket(name string) *Bucket {
	for _, b := range buckets {
		if b.Name == name || b.Dir == name {
			return b
		}
	}
	return nil
}

// StoredFile describes an accepted upload. The original name and declared
// MIME type are metadata only and never drive re-classification.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
}

// FileInfo describes a stored file in a bucket listing.
type FileInfo struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	SizeHuman string    `json:"sizeHuman"`
	Modified  time.Time `json:"modified"`
}

// UploadService stores binary payloads under a bucket-namespaced directory
// tree with generated collision-resistant filenames.
type UploadService struct {
	root string
}

// NewUploadService creates the bucket directories under root.
func NewUploadService(root string) (*UploadService, error) {
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(root, b.Dir), 0o750); err != nil {
			return nil, err
		}
	}
	return &UploadService{root: root}, nil
}

// Store validates a payload against the bucket's allow-list and size cap and
// writes it to disk. Nothing is written when validation fails.
func (s *UploadService) Store(bucketName string, file *multipart.FileHeader) (*StoredFile, error) {
	bucket := GetBucket(bucketName)
	if bucket == nil {
		return nil, ErrInvalidBucket
	}

	mimeType := file.Header.Get("Content-Type")
	if !bucket.accepts(mimeType) {
		return nil, ErrUnsupportedMediaType
	}
	if file.Size > bucket.MaxSize {
		return nil, ErrPayloadTooLarge
	}

	filename := generateFilename(bucket.Name, file.Filename)
	dst := filepath.Join(s.root, bucket.Dir, filename)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	return &StoredFile{
		Filename:     filename,
		OriginalName: file.Filename,
		Path:         "/uploads/" + bucket.Dir + "/" + filename,
		Size:         file.Size,
		MimeType:     mimeType,
	}, nil
}

// generateFilename builds `<bucket>-<unixmilli>-<random><ext>` keeping only a
// sanitized extension from the original name.
func generateFilename(bucketName, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if strings.ContainsAny(ext, "/\\") || len(ext) > 10 {
		ext = ""
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return bucketName + "-" + ts + "-" + random.Seq(9) + ext
}

// List returns the files stored in a bucket.
func (s *UploadService) List(bucketName string) ([]FileInfo, error) {
	bucket := GetBucket(bucketName)
	if bucket == nil {
		return nil, ErrInvalidBucket
	}

	entries, err := os.ReadDir(filepath.Join(s.root, bucket.Dir))
	if err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, err
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Filename:  entry.Name(),
			Path:      "/uploads/" + bucket.Dir + "/" + entry.Name(),
			Size:      info.Size(),
			SizeHuman: common.FormatSize(info.Size()),
			Modified:  info.ModTime(),
		})
	}
	return files, nil
}

// Delete removes a single file from a bucket. The filename is confined to the
// bucket directory; anything that could escape it is rejected.
func (s *UploadService) Delete(bucketName, filename string) error {
	bucket := GetBucket(bucketName)
	if bucket == nil {
		return ErrInvalidBucket
	}
	if !safeFilename(filename) {
		return ErrInvalidFilename
	}

	path := filepath.Join(s.root, bucket.Dir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func safeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
