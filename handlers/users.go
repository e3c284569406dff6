package handlers

import (
	"net/http"

	"recipe-api/apperr"
	"recipe-api/middleware"
	"recipe-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

type UserHandler struct {
	accounts  *services.AccountService
	favorites *services.FavoriteService
	maxUpload int64
}

func NewUserHandler(accounts *services.AccountService, favorites *services.FavoriteService, maxUpload int64) *UserHandler {
	return &UserHandler{accounts: accounts, favorites: favorites, maxUpload: maxUpload}
}

// GetMe returns the caller's profile and activity counts
func (h *UserHandler) GetMe(c *gin.Context) {
	p, err := h.accounts.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	u, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// UpdateAvatar uploads the "avatar" file part and returns its URL.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	data, err := readUpload(c, "avatar", h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(data) == 0 {
		respondError(c, apperr.InvalidInput("No image file provided"))
		return
	}

	url, err := h.accounts.UpdateAvatar(c.Request.Context(), middleware.GetUserID(c), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avatar uploaded successfully", "imageUrl": url})
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), middleware.GetUserID(c), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// GetPublic returns what anyone may see about a user
func (h *UserHandler) GetPublic(c *gin.Context) {
	p, err := h.accounts.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	recipes, err := h.favorites.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
