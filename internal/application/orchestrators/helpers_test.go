package orchestrators

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"furnitech/internal/adapters/email"
	"furnitech/internal/domain/admin"
)

func TestMain(m *testing.M) {
	admin.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqIDs returns a generator yielding prefix-1, prefix-2, ...
func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// fakeImages records saved uploads without touching disk.
type fakeImages struct {
	saved []string
	err   error
}

func (f *fakeImages) Save(filename string, src io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(src); err != nil {
		return "", err
	}
	path := "uploads/" + filename
	f.saved = append(f.saved, path)
	return path, nil
}

// fakeSender captures notification requests.
type fakeSender struct {
	mu   sync.Mutex
	reqs []email.SendRequest
	err  error
}

func (f *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return email.SendResult{}, f.err
	}
	return email.SendResult{MessageID: "msg-1", SentAt: fixedTime}, nil
}
