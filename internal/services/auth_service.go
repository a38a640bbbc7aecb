package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// AuthService handles registration, login, JWT issuing and validation,
// and profile/address management.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for seven
// days.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 7 * 24 * time.Hour,
	}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,min=6,max=20"`
}

// Register creates an account with a bcrypt-hashed password and
// returns the user plus a fresh token.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	if _, err := s.userRepo.GetByEmail(in.Email); err == nil {
		return nil, "", apperr.Invalid("email %s already registered", in.Email)
	} else if !apperr.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Addresses:    []models.Address{},
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and returns the user plus
// a fresh token. The error never reveals whether the email exists.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) mintToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.tokenDuration).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a token and loads the user it identifies, so a
// deleted account stops authenticating immediately.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid token claims")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, apperr.Unauthorized("invalid token subject")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperr.Unauthorized("user not found")
	}
	return user, nil
}

// GetProfile returns the user's account.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile changes the user's name and phone.
func (s *AuthService) UpdateProfile(userID, name, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Phone = phone
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddAddress appends an address. When the new address is the default,
// the flag is cleared on every other address first, keeping at most one
// default per user.
func (s *AuthService) AddAddress(userID string, address models.Address) (*models.Address, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	if address.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	user.Addresses = append(user.Addresses, address)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return &address, nil
}

// DeleteAddress removes an address by id.
func (s *AuthService) DeleteAddress(userID, addressID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	kept := user.Addresses[:0]
	found := false
	for _, addr := range user.Addresses {
		if addr.ID == addressID {
			found = true
			continue
		}
		kept = append(kept, addr)
	}
	if !found {
		return apperr.NotFound("address %s not found", addressID)
	}
	user.Addresses = kept
	return s.userRepo.Update(user)
}
