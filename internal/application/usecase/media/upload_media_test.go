package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/folio-sync/pkg/apperror"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

// gifBytes sniffs as image/gif.
func gifBytes() []byte { return []byte("GIF89a" + strings.Repeat("x", 64)) }

type fakeUploader struct {
	mu     sync.Mutex
	calls  int
	failOn map[string]bool // keyed by payload prefix after the GIF header
}

func (f *fakeUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	raw, _ := io.ReadAll(file)
	for marker := range f.failOn {
		if bytes.Contains(raw, []byte(marker)) {
			return "", apperror.NewUpload("cloudinary upload failed", errors.New("boom"))
		}
	}
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, n), nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error { return nil }

func TestExecuteReturnsCommittedAttachment(t *testing.T) {
	uc := NewUploadUseCase(&fakeUploader{}, logger.NewNop())

	att, err := uc.Execute(context.Background(), UploadInput{
		Name: "/tmp/cover.gif",
		File: bytes.NewReader(gifBytes()),
	}, "covers")
	require.NoError(t, err)
	assert.True(t, att.Committed())
	assert.Equal(t, "/tmp/cover.gif", att.PreviewPath)
	assert.True(t, strings.HasPrefix(att.CommittedURL, "https://cdn.test/covers/"))
}

func TestExecuteRejectsNonImage(t *testing.T) {
	fake := &fakeUploader{}
	uc := NewUploadUseCase(fake, logger.NewNop())

	_, err := uc.Execute(context.Background(), UploadInput{
		Name: "notes.txt",
		File: strings.NewReader("just some text, definitely not pixels"),
	}, "covers")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	assert.Equal(t, 0, fake.calls, "no network call for a rejected file")
}

func TestExecuteRejectsOversize(t *testing.T) {
	fake := &fakeUploader{}
	uc := NewUploadUseCase(fake, logger.NewNop())

	big := append([]byte("GIF89a"), bytes.Repeat([]byte{0}, maxUploadBytes+1)...)
	_, err := uc.Execute(context.Background(), UploadInput{Name: "huge.gif", File: bytes.NewReader(big)}, "covers")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	assert.Contains(t, err.Error(), "10MB")
	assert.Equal(t, 0, fake.calls)
}

func TestExecuteManyAllOrNothing(t *testing.T) {
	fake := &fakeUploader{failOn: map[string]bool{"FAIL-ME": true}}
	uc := NewUploadUseCase(fake, logger.NewNop())

	inputs := []UploadInput{
		{Name: "a.gif", File: bytes.NewReader(gifBytes())},
		{Name: "b.gif", File: bytes.NewReader(append(gifBytes(), []byte("FAIL-ME")...))},
		{Name: "c.gif", File: bytes.NewReader(gifBytes())},
	}

	urls, err := uc.ExecuteMany(context.Background(), inputs, "gallery")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpload))
	assert.Nil(t, urls, "no partial success escapes the batch")
}

func TestExecuteManyPreservesOrder(t *testing.T) {
	uc := NewUploadUseCase(&fakeUploader{}, logger.NewNop())

	inputs := []UploadInput{
		{Name: "a.gif", File: bytes.NewReader(gifBytes())},
		{Name: "b.gif", File: bytes.NewReader(gifBytes())},
	}

	urls, err := uc.ExecuteMany(context.Background(), inputs, "gallery")
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "https://cdn.test/gallery/"))
	}
}
