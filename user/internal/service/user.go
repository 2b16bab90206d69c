package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/malchin/market/internal/config"
	"github.com/malchin/market/internal/constants"
	inErrors "github.com/malchin/market/internal/errors"
	"github.com/malchin/market/internal/log"
	"github.com/malchin/market/internal/otel"
	"github.com/malchin/market/internal/repository"
	inOtel "github.com/malchin/market/user/internal/otel"
	"github.com/malchin/market/user/pkg/request"
	"github.com/malchin/market/user/pkg/response"
)

const minPasswordLength = 6

type UserService struct {
	queries *repository.Queries
	config  config.Application
}

func NewUserService(queries *repository.Queries, config config.Application) *UserService {
	return &UserService{queries: queries, config: config}
}

func (s *UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	if len(param.Password) < minPasswordLength {
		err := inErrors.ErrWeakPassword
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "checking email").Logger()
	logger.Info().Msg("checking email is not taken")
	_, err := s.queries.FindUserByEmail(c, param.Email)
	if err == nil {
		err = inErrors.ErrEmailExist
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding user by email=%s with error=%w", param.Email, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("checked email is not taken")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := s.queries.InsertUser(c, repository.InsertUserParams{
		Email:       param.Email,
		Password:    string(hashed),
		Name:        param.Name,
		Role:        repository.UserRole(param.Role),
		PhoneNumber: param.PhoneNumber,
		Location:    param.Location,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user")

	return user.Response(), nil
}

func (s *UserService) Login(
	c context.Context,
	param request.Login,
) (response.Login, error) {
	c, span := inOtel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	logger.Info().Msg("finding user by email")
	user, err := s.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding user by email=%s with error=%s", param.Email, err.Error())
		return response.Login{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		err = inErrors.ErrPasswordMismatch
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
			Issuer:    constants.APP_USER_SERVICE,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	)
	signedToken, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("signed token")

	return response.Login{Token: signedToken, User: user.Response()}, nil
}

func (s *UserService) FindUserById(
	c context.Context,
	id uuid.UUID,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, id.String()).
		Str(log.KeyProcess, "finding user by id").
		Logger()

	logger.Info().Msg("finding user by id")
	user, err := s.queries.FindUserById(c, id)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding user by id=%s with error=%s", id.String(), err.Error())
		return response.User{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger.Info().Msg("found user by id")

	return user.Response(), nil
}

func (s *UserService) UpdateProfile(
	c context.Context,
	id uuid.UUID,
	param request.UpdateProfile,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateProfile").
		Str(log.KeyUserID, id.String()).
		Str(log.KeyProcess, "updating user profile").
		Logger()

	logger.Info().Msg("updating user profile")
	user, err := s.queries.UpdateUserProfile(c, repository.UpdateUserProfileParams{
		Name:        param.Name,
		PhoneNumber: param.PhoneNumber,
		Location:    param.Location,
		ID:          id,
	})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed updating user profile with error=%s", err.Error())
		return response.User{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger.Info().Msg("updated user profile")

	return user.Response(), nil
}

func (s *UserService) FindUsers(
	c context.Context,
	callerId uuid.UUID,
) ([]response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService FindUsers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUsers").
		Str(log.KeyUserID, callerId.String()).
		Logger()

	if err := s.requireAdmin(c, callerId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding users").Logger()
	logger.Info().Msg("finding users")
	users, err := s.queries.FindUsers(c)
	if err != nil {
		err = fmt.Errorf("failed finding users with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d users", len(users))

	result := make([]response.User, len(users))
	for i, user := range users {
		result[i] = user.Response()
	}
	return result, nil
}

func (s *UserService) UpdateUserRole(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
	param request.UpdateRole,
) (response.User, error) {
	c, span := inOtel.Tracer.Start(c, "UserService UpdateUserRole")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateUserRole").
		Str(log.KeyUserID, id.String()).
		Str(log.KeyUserRole, param.Role).
		Logger()

	if err := s.requireAdmin(c, callerId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating user role").Logger()
	logger.Info().Msg("updating user role")
	user, err := s.queries.UpdateUserRole(c, repository.UpdateUserRoleParams{
		Role: repository.UserRole(param.Role),
		ID:   id,
	})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed updating user role with error=%s", err.Error())
		return response.User{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger.Info().Msg("updated user role")

	return user.Response(), nil
}

func (s *UserService) requireAdmin(c context.Context, callerId uuid.UUID) error {
	caller, err := s.queries.FindUserById(c, callerId)
	if err != nil {
		return errors.Join(err, inErrors.ErrUserNotFound)
	}
	if caller.Role != repository.UserRoleAdmin {
		return inErrors.ErrForbidden
	}
	return nil
}
