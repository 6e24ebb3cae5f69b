package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cozinha360/pos-backend/utils"
)

// Role yang dikenal aplikasi.
const (
	RoleWaiter  = "waiter"
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
	RoleAdmin   = "admin"
)

func validRole(role string) bool {
	switch role {
	case RoleWaiter, RoleCashier, RoleKitchen, RoleAdmin:
		return true
	}
	return false
}

type UserController struct{}

func NewUserController() *UserController {
	return &UserController{}
}

// Login adalah stub pemilihan peran: tanpa akun dan password, cukup nama dan
// role untuk mendapatkan token sesi.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
		Role string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := strings.ToLower(input.Role)
	if !validRole(role) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown role: %s", input.Role))
		return
	}

	token, err := utils.GenerateToken(input.Name, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login: %s (role=%s)", input.Name, role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_name": input.Name,
		"user_role": role,
	})
}

// GetProfile -> identitas sesi dari token.
func (uc *UserController) GetProfile(c *gin.Context) {
	name, _ := c.Get("name")
	role, _ := c.Get("role")
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"name": name,
		"role": role,
	})
}

// ErrNoPermission adalah error custom untuk akses tanpa izin.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
