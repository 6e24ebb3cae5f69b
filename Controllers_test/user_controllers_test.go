package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cozinha360/pos-backend/controllers"
	"github.com/cozinha360/pos-backend/middlewares"
	"github.com/cozinha360/pos-backend/utils"
)

func setupUserRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController()
	router.POST("/login", userCtrl.Login)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", userCtrl.GetProfile)
	return router
}

func loginAs(t *testing.T, router *gin.Engine, name, role string) string {
	w := doJSON(t, router, "POST", "/login", map[string]string{
		"name": name,
		"role": role,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token    string `json:"token"`
			UserName string `json:"user_name"`
			UserRole string `json:"user_role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestLoginAndProfile(t *testing.T) {
	utils.InitLogger()
	router := setupUserRouter()

	token := loginAs(t, router, "Ana", "Waiter") // role tidak case sensitive

	req, _ := http.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ana", resp.Data.Name)
	assert.Equal(t, "waiter", resp.Data.Role)
}

func TestLoginUnknownRole(t *testing.T) {
	utils.InitLogger()
	router := setupUserRouter()

	w := doJSON(t, router, "POST", "/login", map[string]string{
		"name": "Ana",
		"role": "hacker",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileWithoutToken(t *testing.T) {
	utils.InitLogger()
	router := setupUserRouter()

	req, _ := http.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleCheckMiddleware(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	protected := router.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	protected.Use(middlewares.RequireRoles(controllers.RoleKitchen))
	protected.GET("/kitchen/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	loginRouter := setupUserRouter()
	kitchenToken := loginAs(t, loginRouter, "Chef", "kitchen")
	waiterToken := loginAs(t, loginRouter, "Ana", "waiter")
	adminToken := loginAs(t, loginRouter, "Boss", "admin")

	cases := []struct {
		token string
		want  int
	}{
		{kitchenToken, http.StatusOK},
		{waiterToken, http.StatusForbidden},
		{adminToken, http.StatusOK}, // admin lolos semua role check
	}
	for _, tc := range cases {
		req, _ := http.NewRequest("GET", "/kitchen/orders", nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code)
	}
}
