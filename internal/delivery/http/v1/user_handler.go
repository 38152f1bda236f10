package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxUploadBody caps multipart bodies; per-kind limits are checked by the usecase.
const maxUploadBody = 12 << 20

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(r *gin.RouterGroup, userUC domain.UserUsecase, uploadLimit gin.HandlerFunc) {
	handler := &UserHandler{userUC: userUC}

	users := r.Group("/users")
	{
		users.POST("", handler.Register)
		users.GET("/:id", handler.GetProfile)
		users.PATCH("/:id", handler.UpdateProfile)
		users.POST("/:id/cv", uploadLimit, handler.UploadCV)
		users.POST("/:id/avatar", uploadLimit, handler.UploadAvatar)
	}
}

type RegisterRequest struct {
	Username     string   `json:"username" binding:"required,min=3,max=50,alphanum"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8,max=72"`
	FullName     string   `json:"fullName" binding:"required,max=100,valid_name"`
	ProfileImage *string  `json:"profileImage" binding:"omitempty,url"`
	Bio          *string  `json:"bio" binding:"omitempty,max=2000,no_emoji"`
	Location     *string  `json:"location" binding:"omitempty,max=200"`
	Skills       []string `json:"skills"`
	Experience   *string  `json:"experience" binding:"omitempty,max=5000"`
	IsRecruiter  bool     `json:"isRecruiter"`
}

type UpdateProfileRequest struct {
	Email        *string  `json:"email" binding:"omitempty,email"`
	Password     *string  `json:"password" binding:"omitempty,min=8,max=72"`
	FullName     *string  `json:"fullName" binding:"omitempty,min=1,max=100,valid_name"`
	ProfileImage *string  `json:"profileImage" binding:"omitempty,url"`
	Bio          *string  `json:"bio" binding:"omitempty,max=2000,no_emoji"`
	Location     *string  `json:"location" binding:"omitempty,max=200"`
	Skills       []string `json:"skills"`
	Experience   *string  `json:"experience" binding:"omitempty,max=5000"`
	IsRecruiter  *bool    `json:"isRecruiter"`
}

// Register godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account data"
// @Success      201   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUC.Register(c.Request.Context(), domain.UserInput{
		Username:     req.Username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     req.Password,
		FullName:     req.FullName,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
		Location:     req.Location,
		Skills:       req.Skills,
		Experience:   req.Experience,
		IsRecruiter:  req.IsRecruiter,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered", user)
}

// GetProfile godoc
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.GetUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateProfile godoc
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "User ID"
// @Param        body  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), id, domain.UserPatch{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
		Location:     req.Location,
		Skills:       req.Skills,
		Experience:   req.Experience,
		IsRecruiter:  req.IsRecruiter,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// UploadCV godoc
// @Summary      Upload a CV
// @Description  PDF only, up to 10 MB
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "User ID"
// @Param        file  formData  file  true  "CV (PDF)"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      415   {object}  response.Response
// @Router       /users/{id}/cv [post]
func (h *UserHandler) UploadCV(c *gin.Context) {
	h.upload(c, h.userUC.UploadCV, "CV uploaded")
}

// UploadAvatar godoc
// @Summary      Upload a profile picture
// @Description  JPEG, PNG or GIF up to 5 MB; stored as a JPEG of at most 512px per side
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "User ID"
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      415   {object}  response.Response
// @Router       /users/{id}/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, h.userUC.UploadAvatar, "Profile picture uploaded")
}

type uploadFunc func(ctx context.Context, id int64, file domain.Upload) (*domain.User, error)

func (h *UserHandler) upload(c *gin.Context, store uploadFunc, message string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			c.Error(apperror.PayloadTooLarge("File too large"))
			return
		}
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	user, err := store(c.Request.Context(), id, domain.Upload{
		Filename: file.Filename,
		Size:     file.Size,
		Content:  src,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, message, user)
}
