package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsroom-cms/config"
	"newsroom-cms/models"
	"newsroom-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	// Authenticate resolves a bearer token to the current state of its user.
	Authenticate(ctx context.Context, token string) (*models.Actor, error)
}

// Claims is the body of a signed user token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	log      *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig, log *zap.Logger) AuthService {
	return &authService{userRepo: userRepo, jwt: jwtCfg, log: log}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, models.ErrorConflict{Message: "username already taken"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dbError(err, "user")
	}

	role := models.RoleReader
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.ErrorInternalServer{Err: err}
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "username already taken"}
		}
		return nil, dbError(err, "user")
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))

	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, dbError(err, "user")
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.respond(user)
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwt.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Code: "invalid_token", Message: "token is invalid or expired"}
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Code: "invalid_token", Message: "token user no longer exists"}
		}
		return nil, dbError(err, "user")
	}

	return &models.Actor{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, models.ErrorInternalServer{Err: err}
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwt.Secret)
}

func invalidCredentials() error {
	return models.ErrorUnauthorized{Code: "invalid_credentials", Message: "invalid username or password"}
}
