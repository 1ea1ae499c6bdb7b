package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts-api/internal/application/ports"
	"contacts-api/internal/interface/api/rest/dto/user"
	"contacts-api/internal/interface/api/rest/middleware"
)

// multipart headers and boundaries on top of the file itself
const multipartOverhead = 1 << 20

type UserController struct {
	userService   ports.UserService
	logger        *zap.Logger
	maxAvatarSize int64
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	auth gin.HandlerFunc,
	maxAvatarSize int64,
) *UserController {
	uc := &UserController{
		userService:   userService,
		logger:        logger,
		maxAvatarSize: maxAvatarSize,
	}

	r.GET(RouteMe, auth, uc.GetMeHandler)
	r.POST(RouteMyAvatar, auth, uc.UploadAvatarHandler)

	return uc
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, uc.logger, "FindUserByID()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UploadAvatarHandler(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.maxAvatarSize+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > uc.maxAvatarSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, uc.logger, "FormFile.Open()", err)
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(c, uc.logger, "avatar read", err)
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		writeError(c, uc.logger, "avatar seek", err)
		return
	}

	u, err := uc.userService.UploadAvatar(c.Request.Context(), id, ports.AvatarFile{
		Name:        fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, uc.logger, "UploadAvatar()", err)
		return
	}

	var url string
	if u.AvatarURL != nil {
		url = *u.AvatarURL
	}
	c.JSON(http.StatusOK, user.AvatarResponse{AvatarURL: url})
}
