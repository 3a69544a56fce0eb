package controllers

import (
	"catering-backend/models"
	"catering-backend/utils"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	db     *gorm.DB
	tokens *utils.TokenIssuer
}

func NewAuthController(db *gorm.DB, tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{db: db, tokens: tokens}
}

func userResponse(u models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, int(ac.tokens.Expiry().Seconds()), "/", "", true, true)
}

// Register signs up a customer account.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := utils.NormalizePhone(input.Phone)

	// Check if email or phone already exists
	var existingUser models.User
	result := ac.db.Where("email = ? OR phone = ?", email, phone).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:    email,
		Phone:    phone,
		Name:     strings.TrimSpace(input.Name),
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     utils.RoleCustomer,
		IsActive: true,
	}
	if err := ac.db.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := ac.tokens.GenerateToken(newUser.ID, newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	ac.setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userResponse(newUser),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)
	if strings.Contains(identifier, "@") {
		identifier = strings.ToLower(identifier)
	} else {
		identifier = utils.NormalizePhone(identifier)
	}

	var user models.User
	if err := ac.db.Where("email = ? OR phone = ?", identifier, identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ac.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	ac.db.Model(&user).Update("last_login", &now)

	ac.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, _, ok := utils.Identity(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// SeedAdmin creates the configured administrator when no user has that email.
func SeedAdmin(db *gorm.DB, email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	admin := models.User{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     utils.RoleAdmin,
		IsActive: true,
	}
	return true, db.Create(&admin).Error
}
