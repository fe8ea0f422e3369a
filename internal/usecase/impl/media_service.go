package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	deliverycontext "solar/internal/delivery/context"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/service"
	"solar/internal/infra/metrics"
	"solar/internal/usecase"
	"solar/internal/util"

	"go.uber.org/fx"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type mediaService struct {
	storage service.ObjectStorage
	logger  *slog.Logger
}

// MediaServiceParams holds dependencies for MediaService, injected by Fx.
type MediaServiceParams struct {
	fx.In

	Storage service.ObjectStorage
	Logger  *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(params MediaServiceParams) usecase.MediaUsecase {
	return &mediaService{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

func (srv *mediaService) Upload(ctx context.Context, input *usecase.UploadInput) (*service.StoredObject, error) {
	if len(input.Data) == 0 {
		return nil, validationError("file is empty")
	}

	contentType := input.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(input.Data)
	}

	key := mediaKey(input.Filename, time.Now())

	obj, err := srv.storage.Put(ctx, key, input.Data, contentType)
	if err != nil {
		metrics.RecordOutboundFailure(metrics.ChannelStorage)
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to store upload",
			slog.String("key", key), slog.Any("error", err))

		return nil, domainerrors.ErrUploadFailed.WithDetails(err.Error())
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Media uploaded",
		slog.String("key", obj.Key),
		slog.String("size", util.FormatBytes(int64(len(input.Data)))),
		slog.String("sha256", util.Checksum(input.Data)),
	)

	return obj, nil
}

// mediaKey builds media/<unix millis>-<random hex>-<sanitized name>.
func mediaKey(filename string, now time.Time) string {
	name := unsafeNameChars.ReplaceAllString(path.Base(strings.ReplaceAll(filename, "\\", "/")), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "file"
	}

	var b [3]byte
	_, _ = rand.Read(b[:])

	return "media/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b[:]) + "-" + name
}
