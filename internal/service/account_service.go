package service

import (
	"errors"
	"time"

	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/internal/utils"
	"github.com/homeserve/backend/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
)

type AccountService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAccountService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, environment string) *AccountService {
	return &AccountService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AccountService) IsProduction() bool {
	return s.environment == "production"
}

// Register creates a user and its paired profile. The two writes are not
// wrapped in a transaction; a failure between them leaves a user without a
// profile, which the read path tolerates with placeholder values.
func (s *AccountService) Register(username, password, email string, isProvider bool, phone, address string) (*models.User, error) {
	start := time.Now()

	logger.Log.Debug("Processing user registration",
		zap.String("username", username),
		zap.Bool("is_provider", isProvider),
	)

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Username already taken",
			zap.String("username", username),
		)
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsProvider:   isProvider,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user in database",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	profile := &models.Profile{
		UserID:  user.ID,
		Phone:   phone,
		Address: address,
	}

	if err := s.userRepo.CreateProfile(profile); err != nil {
		logger.Log.Error("Failed to create profile in database",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("username", username),
		zap.Bool("is_provider", isProvider),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, nil
}

// Login authenticates credentials and returns the user plus a signed token
func (s *AccountService) Login(username, password string) (*models.User, string, error) {
	logger.Log.Debug("Processing user login",
		zap.String("username", username),
	)

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.Uint("user_id", user.ID),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, token, nil
}

// ProfileView is the flattened user+profile read model
type ProfileView struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsProvider bool   `json:"is_provider"`
}

func (s *AccountService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	view := &ProfileView{
		Username:   user.Username,
		Email:      user.Email,
		IsProvider: user.IsProvider,
	}

	profile, err := s.userRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		view.Phone = profile.Phone
		view.Address = profile.Address
	}

	return view, nil
}

// UpdateProfile patches email/phone/address; nil fields keep old values
func (s *AccountService) UpdateProfile(userID uint, email, phone, address *string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if email != nil {
		user.Email = *email
		if err := s.userRepo.SaveUser(user); err != nil {
			logger.Log.Error("Failed to update user",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
			return err
		}
	}

	profile, err := s.userRepo.GetProfileByUserID(userID)
	if err != nil {
		return err
	}
	if profile != nil && (phone != nil || address != nil) {
		if phone != nil {
			profile.Phone = *phone
		}
		if address != nil {
			profile.Address = *address
		}
		if err := s.userRepo.SaveProfile(profile); err != nil {
			logger.Log.Error("Failed to update profile",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
			return err
		}
	}

	logger.Log.Info("Profile updated",
		zap.Uint("user_id", userID),
	)

	return nil
}
