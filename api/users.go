package api

import (
	"net/http"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

type sessionResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
	router.GET("/users", h.list)
	router.DELETE("/users/:id", h.delete)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

// signup godoc
// @Summary  Register a new user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    request body signupRequest true "credentials"
// @Success  201 {object} sessionResponse
// @Router   /api/auth/signup [post]
func (h *UserHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username, a valid email and password are required")
		return
	}
	session, err := h.service.Signup(c.Request.Context(), users.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse{Success: true, Token: session.Token, User: toUserResponse(session.User)})
}

// login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    request body loginRequest true "credentials"
// @Success  200 {object} sessionResponse
// @Router   /api/auth/login [post]
func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true, Token: session.Token, User: toUserResponse(session.User)})
}

func (h *UserHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(list))
	for i := range list {
		out = append(out, toUserResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
