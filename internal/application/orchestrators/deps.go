package orchestrators

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// ImageSaver stores an uploaded image and returns its static-relative path.
// *upload.Store satisfies it.
type ImageSaver interface {
	Save(filename string, src io.Reader) (string, error)
}

// nowOr returns now() or the wall clock when now is nil.
func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

// idOr returns gen() or a fresh UUID when gen is nil.
func idOr(gen func() string) string {
	if gen == nil {
		return uuid.New().String()
	}
	return gen()
}
