package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAccessDenied        = errors.New("you don't have access to this resource")
	ErrRoleChangeForbidden = errors.New("only admins can change roles")
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id uint) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	appointmentRepo  repository.AppointmentRepository
	clinicDoctorRepo repository.ClinicDoctorRepository
	redisClient      *redis.Client
	auditService     service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	clinicDoctorRepo repository.ClinicDoctorRepository,
	redisClient *redis.Client,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		appointmentRepo:  appointmentRepo,
		clinicDoctorRepo: clinicDoctorRepo,
		redisClient:      redisClient,
		auditService:     auditService,
	}
}

// CreateUser is the admin-only creation path and the only way to mint an
// admin account over the API.
func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionUserCreate, entity.JSON{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	if err := u.requireSelfOrAdmin(ctx, id); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := u.requireSelfOrAdmin(ctx, id); err != nil {
		return nil, err
	}

	callerRole, _ := middleware.GetUserRoleFromContext(ctx)
	if req.Role != nil && callerRole != entity.RoleAdmin {
		return nil, ErrRoleChangeForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionUserUpdate, entity.JSON{
		"user_id": user.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// DeleteUser removes the user and, in the same transaction, every
// appointment referencing them as patient or doctor plus any clinic
// assignments, so no dangling foreign keys survive.
func (u *userUsecase) DeleteUser(ctx context.Context, id uint) error {
	if err := u.requireSelfOrAdmin(ctx, id); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.appointmentRepo.DeleteByUserID(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointments for user %d: %+v", id, err)
		return err
	}

	if err := u.clinicDoctorRepo.DeleteByDoctorID(tx, id); err != nil {
		u.log.Warnf("Failed to delete clinic assignments for user %d: %+v", id, err)
		return err
	}

	if _, err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete user %d: %+v", id, err)
		return err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionUserDelete, entity.JSON{
		"user_id": id,
		"email":   user.Email,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.revokeAllTokens(ctx, id)

	return nil
}

// revokeAllTokens drops every live token for a deleted user. Best effort:
// the auth middleware re-checks the user row anyway.
func (u *userUsecase) revokeAllTokens(ctx context.Context, userID uint) {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%d:*", userID),
		fmt.Sprintf("refresh_token:%d:*", userID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys for user %d: %+v", userID, err)
			continue
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete token keys for user %d: %+v", userID, err)
			}
		}
	}
}

func (u *userUsecase) requireSelfOrAdmin(ctx context.Context, id uint) error {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrAccessDenied
	}
	callerRole, _ := middleware.GetUserRoleFromContext(ctx)
	if callerID != id && callerRole != entity.RoleAdmin {
		return ErrAccessDenied
	}
	return nil
}
