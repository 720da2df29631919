package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no object matches the key.
var ErrNotFound = errors.New("object not found")

// MaxImageSize caps accepted upload payloads.
const MaxImageSize = 5 << 20

// Store is the hosted image store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Upload streams an object and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for direct retrieval.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// RandomKey produces a date-partitioned object key under the given prefix.
func RandomKey(prefix string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%d/%d/%s", prefix, d.Year(), int(d.Month()), d.Day(), uuid.New())
}

// IsImage reports whether the content type names an image format.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
