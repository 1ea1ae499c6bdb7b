package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"contacts-api/internal/application/ports"
	domain "contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/metrics"
)

const maxSlugLen = 64

var ErrUpload = errors.New("avatar upload failed")

var imageExts = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UserService struct {
	userRepository domain.Repository
	storage        ports.AvatarStorage
	mCounter       *prometheus.CounterVec
	clock          func() time.Time
}

func NewUserService(
	userRepository domain.Repository,
	storage ports.AvatarStorage,
	mCounter *prometheus.CounterVec,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		storage:        storage,
		mCounter:       mCounter,
		clock:          time.Now,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) UploadAvatar(ctx context.Context, id domain.ID, in ports.AvatarFile) (*domain.User, error) {
	if _, err := us.userRepository.FetchUserByID(ctx, id); err != nil {
		return nil, err
	}

	key := avatarKey(id, in, us.clock())
	url, err := us.storage.Upload(ctx, key, in.Body, in.Size, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	u, err := us.userRepository.UpdateAvatarURL(ctx, id, url)
	if err != nil {
		return nil, fmt.Errorf("save avatar url: %w", err)
	}

	us.mCounter.WithLabelValues(metrics.AvatarUploaded).Inc()

	return u, nil
}

// avatarKey builds "avatars/<user id>/<utc ts>-<8 hex>/<slug><ext>".
func avatarKey(id domain.ID, in ports.AvatarFile, now time.Time) string {
	return fmt.Sprintf(
		"avatars/%s/%s-%s/%s%s",
		id.String(),
		now.UTC().Format("20060102T150405.000000000Z"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		avatarSlug(in.Name),
		avatarExt(in.ContentType, in.Name),
	)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// avatarSlug keeps [a-z0-9] of the file stem and collapses everything else into single dashes.
func avatarSlug(name string) string {
	stem := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	stem = strings.TrimSuffix(stem, path.Ext(stem))
	stem, _, _ = transform.String(stripMarks, strings.ToLower(stem))

	var b strings.Builder
	dash := false
	for _, r := range stem {
		if r < utf8.RuneSelf && (unicode.IsLower(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "avatar"
	}

	return slug
}

// avatarExt trusts the sniffed content type over the client's file name.
func avatarExt(contentType, name string) string {
	if ext, ok := imageExts[contentType]; ok {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if ext := strings.ToLower(path.Ext(name)); ext != "" && ext != "." && len(ext) <= 6 {
		return ext
	}

	return ".bin"
}
