package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/db/memory"
)

func TestUserService_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("stores file and persists url", func(t *testing.T) {
		users := memory.NewUserStore()
		u, err := users.CreateUser(ctx, "ann@example.com", "hash")
		require.NoError(t, err)

		var gotBody string
		storage := &fakeStorage{
			UploadFunc: func(_ context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
				b, _ := io.ReadAll(body)
				gotBody = string(b)
				assert.Equal(t, int64(3), size)
				assert.Equal(t, "image/png", contentType)
				return "https://cdn.example.com/" + key, nil
			},
		}
		s := NewUserService(users, storage, newCounter())
		s.clock = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

		out, err := s.UploadAvatar(ctx, u.ID, ports.AvatarFile{
			Name:        "../My Photo.PNG",
			ContentType: "image/png",
			Size:        3,
			Body:        strings.NewReader("png"),
		})
		require.NoError(t, err)
		require.Len(t, storage.keys, 1)

		key := storage.keys[0]
		assert.True(t, strings.HasPrefix(key, "avatars/1/20240506T070809.000000000Z-"), key)
		assert.True(t, strings.HasSuffix(key, "/my-photo.png"), key)
		assert.Equal(t, "png", gotBody)
		require.NotNil(t, out.AvatarURL)
		assert.Equal(t, "https://cdn.example.com/"+key, *out.AvatarURL)

		stored, err := s.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, out.AvatarURL, stored.AvatarURL)
	})

	t.Run("storage failure wraps ErrUpload", func(t *testing.T) {
		users := memory.NewUserStore()
		u, err := users.CreateUser(ctx, "ann@example.com", "hash")
		require.NoError(t, err)

		s := NewUserService(users, &fakeStorage{
			UploadFunc: func(context.Context, string, io.Reader, int64, string) (string, error) {
				return "", errors.New("connection reset")
			},
		}, newCounter())

		_, err = s.UploadAvatar(ctx, u.ID, ports.AvatarFile{Name: "a.png", Body: strings.NewReader("x"), Size: 1})
		require.ErrorIs(t, err, ErrUpload)

		stored, err := s.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.AvatarURL)
	})

	t.Run("unknown user", func(t *testing.T) {
		s := NewUserService(memory.NewUserStore(), &fakeStorage{}, newCounter())
		_, err := s.UploadAvatar(ctx, 42, ports.AvatarFile{Name: "a.png", Body: strings.NewReader("x")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAvatarSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "avatar"},
		{"photo.jpg", "photo"},
		{"My Photo.PNG", "my-photo"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\ann\avatar.jpeg`, "avatar"},
		{"Café Olé.gif", "cafe-ole"},
		{"..", "avatar"},
		{"фото.jpg", "avatar"},
		{"a___b---c.webp", "a-b-c"},
		{"evil.php%00.png", "evil-php-00"},
		{strings.Repeat("x", 80) + ".png", strings.Repeat("x", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, avatarSlug(tt.in))
		})
	}
}

func TestAvatarExt(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		file        string
		want        string
	}{
		{name: "sniffed png wins over name", contentType: "image/png", file: "shell.php", want: ".png"},
		{name: "jpeg", contentType: "image/jpeg", file: "a", want: ".jpg"},
		{name: "unknown type keeps short name ext", contentType: "application/x-unknown", file: "a.HEIC", want: ".heic"},
		{name: "nothing usable", contentType: "application/x-unknown", file: "noext", want: ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, avatarExt(tt.contentType, tt.file))
		})
	}
}

func TestAvatarKey_ExtensionFromContentType(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	key := avatarKey(7, ports.AvatarFile{Name: "noext", ContentType: "application/x-unknown"}, now)
	assert.True(t, strings.HasSuffix(key, "/noext.bin"), key)
	assert.Len(t, strings.Split(key, "/"), 4)
	assert.True(t, strings.HasPrefix(key, "avatars/7/"), key)
}
