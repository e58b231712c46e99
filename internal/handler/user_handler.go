package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/accountly/user-service/internal/api"
	"github.com/accountly/user-service/internal/middleware"
	"github.com/accountly/user-service/internal/models"
	"github.com/accountly/user-service/internal/repository"
	"github.com/accountly/user-service/internal/service"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Activate(ctx context.Context, email string) (*service.ActivationResult, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	List(ctx context.Context, page, limit int) (*models.Page, error)
	Detail(ctx context.Context, id string) (*models.UserView, error)
}

// UserHandler maps the listing, detail, registration and activation
// endpoints onto the user service.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type RegisterRequest struct {
	Email    string `form:"email" validate:"required,max=255"`
	Fullname string `form:"fullname" validate:"required,max=255"`
	Password string `form:"password" validate:"required,min=6"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// List responds 200 with an envelope in every case; a read failure becomes
// status "false" with the error message, not a 5xx.
func (h *UserHandler) List(c *gin.Context) {
	page := positiveIntQuery(c, "page")
	limit := positiveIntQuery(c, "limit")

	result, err := h.queries.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusOK, api.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, api.OK(result))
}

// Detail responds 200 with null data for an unknown id; there is no 404 on
// this endpoint.
func (h *UserHandler) Detail(c *gin.Context) {
	view, err := h.queries.Detail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, api.OK(nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, api.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, api.OK(view))
}

// Register validates the multipart form and creates the account. Field
// errors return the bare error list with 400; once validation has passed the
// status code is 201 regardless of how the creation itself went, with the
// envelope carrying the outcome.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	_ = c.ShouldBind(&req)

	validationErrors := middleware.ValidateRequest(req)

	file, err := c.FormFile("profile_photo")
	if err != nil {
		validationErrors = append(validationErrors, middleware.ValidationError{
			Field: "profile_photo", Message: "This field is required", Type: "required",
		})
	}

	var contentType string
	if file != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusCreated, api.Fail(err.Error()))
			return
		}
		mtype, err := mimetype.DetectReader(src)
		src.Close()
		if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
			validationErrors = append(validationErrors, middleware.ValidationError{
				Field: "profile_photo", Message: "The file must be an image", Type: "image",
			})
		} else {
			contentType = mtype.String()
		}
	}

	if req.Email != "" {
		if taken, err := h.commands.EmailTaken(c.Request.Context(), req.Email); err == nil && taken {
			validationErrors = append(validationErrors, middleware.ValidationError{
				Field: "email", Message: "The email has already been taken", Type: "unique",
			})
		}
	}

	if validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusCreated, api.Fail(err.Error()))
		return
	}
	defer src.Close()

	user, err := h.commands.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Fullname: req.Fullname,
		Password: req.Password,
		Photo: service.PhotoUpload{
			Reader:      src,
			Size:        file.Size,
			Filename:    file.Filename,
			ContentType: contentType,
		},
	})
	if err != nil {
		c.JSON(http.StatusCreated, api.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, api.OK(user))
}

// Activate flips the account to active and echoes the pre-update snapshot.
func (h *UserHandler) Activate(c *gin.Context) {
	result, err := h.commands.Activate(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, api.Fail("User is not found."))
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, api.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, api.OK(result))
}

func positiveIntQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
