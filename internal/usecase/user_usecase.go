package usecase

import (
	"context"
	"errors"

	"patients-management/internal/converter"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserLinkedToDoctor = errors.New("user is linked to a doctor")

type UserUsecase interface {
	GetAll(ctx context.Context, query *dto.UserListQuery) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Patch(ctx context.Context, id uuid.UUID, req *dto.PatchUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db           repository.Transactor
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	tokens       service.TokenStore
	auditService service.AuditService
}

func NewUserUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	tokens service.TokenStore,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		tokens:       tokens,
		auditService: auditService,
	}
}

func (u *userUsecase) GetAll(ctx context.Context, query *dto.UserListQuery) ([]dto.UserResponse, int64, error) {
	filter := &entity.UserFilter{
		Search:        query.Search,
		Role:          entity.Role(query.Role),
		SecondaryRole: entity.Role(query.SecondaryRole),
		Pagination:    query.Pagination(),
	}

	users, total, err := u.userRepo.FindAll(u.db.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	db := u.db.Conn(ctx)
	user, err := u.find(db, id)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByUserID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user ID: %+v", err)
		return nil, err
	}
	user.Doctor = doctor

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	primary := entity.RoleReception
	if req.Role != "" {
		primary = entity.Role(req.Role)
	}

	user := &entity.User{
		Username: req.Username,
		Number:   req.Number,
		IsActive: req.IsActive,
	}
	if err := setRoles(user, primary, optionalRole(req.SecondaryRole)); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	user.Password = string(hashedPassword)

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.ensureUsernameFree(tx, user.Username, uuid.Nil); err != nil {
			return err
		}

		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "username") {
				return ErrUsernameAlreadyExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionUserCreate, "user", user.ID.String(), converter.UserToResponse(user))
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return u.modify(ctx, id, func(user *entity.User) error {
		if err := setRoles(user, entity.Role(req.Role), optionalRole(req.SecondaryRole)); err != nil {
			return err
		}
		user.Username = req.Username
		user.Number = req.Number
		if req.IsActive != nil {
			user.IsActive = req.IsActive
		}
		if req.Password != "" {
			return u.setPassword(user, req.Password)
		}
		return nil
	})
}

func (u *userUsecase) Patch(ctx context.Context, id uuid.UUID, req *dto.PatchUserRequest) (*dto.UserResponse, error) {
	return u.modify(ctx, id, func(user *entity.User) error {
		primary := user.Role
		if req.Role != nil {
			role, err := entity.ParseRole(*req.Role)
			if err != nil {
				return NewValidationError("role", "role must be one of: reception, doctor, pharmacist, admin")
			}
			primary = role
		}

		secondary := user.SecondaryRole
		if req.SecondaryRole != nil {
			secondary = optionalRole(*req.SecondaryRole)
			if secondary != nil && !secondary.Valid() {
				return NewValidationError("secondary_role", "secondary_role must be one of: reception, doctor, pharmacist, admin")
			}
		}

		if err := setRoles(user, primary, secondary); err != nil {
			return err
		}
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.Number != nil {
			user.Number = *req.Number
		}
		if req.IsActive != nil {
			user.IsActive = req.IsActive
		}
		if req.Password != nil {
			if req.Password2 == nil || *req.Password2 != *req.Password {
				return NewValidationError("password2", "password2 must match password")
			}
			return u.setPassword(user, *req.Password)
		}
		return nil
	})
}

// modify loads the user, applies change and persists it in one transaction.
// Tokens are revoked when roles, status or password changed.
func (u *userUsecase) modify(ctx context.Context, id uuid.UUID, change func(user *entity.User) error) (*dto.UserResponse, error) {
	var user *entity.User
	var revoke bool

	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = u.find(tx, id)
		if err != nil {
			return err
		}
		before := *user
		oldValue := converter.UserToResponse(&before)

		if err := change(user); err != nil {
			return err
		}

		if user.Username != before.Username {
			if err := u.ensureUsernameFree(tx, user.Username, user.ID); err != nil {
				return err
			}
		}

		doctor, err := u.doctorRepo.FindByUserID(tx, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find doctor by user ID: %+v", err)
			return err
		}
		if doctor != nil && !user.HasRole(entity.RoleDoctor) {
			return NewValidationError("role", "user is linked to a doctor and must keep the doctor role")
		}

		if err := u.userRepo.Update(tx, user); err != nil {
			if isDuplicateKeyError(err, "username") {
				return ErrUsernameAlreadyExists
			}
			u.log.Warnf("Failed to update user: %+v", err)
			return err
		}
		user.Doctor = doctor

		revoke = user.Password != before.Password ||
			user.Active() != before.Active() ||
			!sameRoles(user.RoleSet(), before.RoleSet())

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionUserUpdate, "user", user.ID.String(), oldValue, converter.UserToResponse(user))
	})
	if err != nil {
		return nil, err
	}

	if revoke {
		if err := u.tokens.RevokeAll(ctx, user.ID); err != nil {
			u.log.Warnf("Failed to revoke user tokens: %+v", err)
		}
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		user, err := u.find(tx, id)
		if err != nil {
			return err
		}

		doctor, err := u.doctorRepo.FindByUserID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor by user ID: %+v", err)
			return err
		}
		if doctor != nil {
			return ErrUserLinkedToDoctor
		}

		if _, err := u.userRepo.Delete(tx, id); err != nil {
			if isForeignKeyError(err, "doctor") {
				return ErrUserLinkedToDoctor
			}
			u.log.Warnf("Failed to delete user: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionUserDelete, "user", id.String(), converter.UserToResponse(user))
	})
	if err != nil {
		return err
	}

	if err := u.tokens.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke user tokens: %+v", err)
	}
	return nil
}

func (u *userUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *userUsecase) ensureUsernameFree(db *gorm.DB, username string, self uuid.UUID) error {
	existing, err := u.userRepo.FindByUsername(db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return err
	}
	if existing != nil && existing.ID != self {
		return ErrUsernameAlreadyExists
	}
	return nil
}

func (u *userUsecase) setPassword(user *entity.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = string(hashedPassword)
	return nil
}

// setRoles applies the role pair, turning role errors into field errors.
func setRoles(user *entity.User, primary entity.Role, secondary *entity.Role) error {
	err := user.SetRoles(primary, secondary)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrSecondaryRoleConflict):
		return NewValidationError("secondary_role", "Secondary role must be different from primary role")
	case !primary.Valid():
		return NewValidationError("role", "role must be one of: reception, doctor, pharmacist, admin")
	default:
		return NewValidationError("secondary_role", "secondary_role must be one of: reception, doctor, pharmacist, admin")
	}
}

// optionalRole maps an empty string to no role.
func optionalRole(s string) *entity.Role {
	if s == "" {
		return nil
	}
	r := entity.Role(s)
	return &r
}

func sameRoles(a, b entity.RoleSet) bool {
	if a.Primary != b.Primary {
		return false
	}
	if a.Secondary == nil || b.Secondary == nil {
		return a.Secondary == nil && b.Secondary == nil
	}
	return *a.Secondary == *b.Secondary
}
