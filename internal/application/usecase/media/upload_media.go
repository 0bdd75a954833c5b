package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/folio-sync/internal/application/service"
	"github.com/khoahotran/folio-sync/internal/domain/media"
	"github.com/khoahotran/folio-sync/pkg/apperror"
	"github.com/khoahotran/folio-sync/pkg/logger"
)

const maxUploadBytes = 10 << 20 // 10MB cap enforced before any bytes leave the machine

type UploadUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadUseCase(u service.Uploader, log logger.Logger) *UploadUseCase {
	return &UploadUseCase{uploader: u, logger: log}
}

type UploadInput struct {
	// Name is the local path or label; it becomes the attachment's preview
	// value and never reaches the server.
	Name string
	File io.Reader
}

// Execute uploads one image and returns the committed attachment. The
// content must sniff as an image and fit the size cap, or no network call
// happens at all.
func (uc *UploadUseCase) Execute(ctx context.Context, in UploadInput, folder string) (media.Attachment, error) {
	data, err := readImage(in)
	if err != nil {
		return media.Attachment{}, err
	}

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), folder, uuid.New().String())
	if err != nil {
		uc.logger.Error("image upload failed", err, zap.String("name", in.Name))
		return media.Attachment{}, err
	}

	return media.Attachment{PreviewPath: in.Name, CommittedURL: url}, nil
}

// ExecuteMany uploads the whole batch concurrently. A single failure fails
// the batch: the error is returned and no URLs are exposed, even for files
// that did resolve.
func (uc *UploadUseCase) ExecuteMany(ctx context.Context, inputs []UploadInput, folder string) ([]string, error) {
	urls := make([]string, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			att, err := uc.Execute(gctx, in, folder)
			if err != nil {
				return err
			}
			urls[i] = att.CommittedURL
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func readImage(in UploadInput) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(in.File, maxUploadBytes+1))
	if err != nil {
		return nil, apperror.NewUpload("failed to read file", err)
	}
	if len(data) > maxUploadBytes {
		return nil, apperror.NewUpload("file exceeds 10MB", nil)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, apperror.NewUpload("file is not an image", nil)
	}
	return data, nil
}
