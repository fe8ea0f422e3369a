package impl

import (
	"context"
	"regexp"
	"testing"
	"time"

	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	pattern := regexp.MustCompile(`^media/1700000000000-[0-9a-f]{6}-(.+)$`)

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "plain", filename: "panel.jpg", want: "panel.jpg"},
		{name: "spaces", filename: "my roof photo.png", want: "my-roof-photo.png"},
		{name: "path traversal", filename: "../../etc/passwd", want: "passwd"},
		{name: "windows path", filename: `C:\Users\a\brochure.pdf`, want: "brochure.pdf"},
		{name: "empty", filename: "", want: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pattern.FindStringSubmatch(mediaKey(tt.filename, now))
			require.Len(t, m, 2)
			assert.Equal(t, tt.want, m[1])
		})
	}
}

func TestMediaService_Upload(t *testing.T) {
	storage := &memoryStorage{}
	srv := NewMediaService(MediaServiceParams{Storage: storage, Logger: testConfigLogger()})

	obj, err := srv.Upload(context.Background(), &usecase.UploadInput{Filename: "a.txt", Data: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), storage.objects[obj.Key])

	_, err = srv.Upload(context.Background(), &usecase.UploadInput{Filename: "empty.txt"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	storage.err = errBoom
	_, err = srv.Upload(context.Background(), &usecase.UploadInput{Filename: "a.txt", Data: []byte("x")})
	assert.True(t, errors.Is(err, domainerrors.ErrUploadFailed))
}

func TestSettingsService_DefaultsBeforeFirstSave(t *testing.T) {
	h := newHarness(t)
	srv := NewSettingsService(SettingsServiceParams{SettingsRepo: h.settings, Logger: h.logger})
	ctx := context.Background()

	settings, err := srv.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultSiteName, settings.SiteName)

	_, err = srv.Upsert(ctx, &usecase.SiteSettingInput{SiteName: "Sunrise Solar", ContactEmail: "hi@sunrise.test"})
	require.NoError(t, err)

	settings, err = srv.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Solar", settings.SiteName)
	assert.Equal(t, "hi@sunrise.test", settings.ContactEmail)
}
