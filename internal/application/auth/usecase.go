package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
	"github.com/jhoicas/inventario-insumos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen largo mínimo de contraseña al registrarse.
const MinPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y baja de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner IdentityTxRunner
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner IdentityTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con rol bodeguero y lo autentica de inmediato (devuelve token).
// Devuelve ErrUsernameAlreadyExists si el nombre de usuario ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	user, err := uc.createUser(ctx, in.Username, in.Password, entity.RoleBodeguero)
	if err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// EnsureUser crea el usuario si no existe (usado por el seed). created indica si se creó.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password, role string) (out *dto.UserResponse, created bool, err error) {
	existing, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return toUserResponse(existing), false, nil
	}
	user, err := uc.createUser(ctx, username, password, role)
	if err != nil {
		return nil, false, err
	}
	return toUserResponse(user), true, nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issueToken(user)
}

// DeleteUser elimina el usuario. Sus movimientos se conservan con el actor en NULL.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, id string) (*dto.DeleteUserResponse, error) {
	var detached int64
	err := uc.txRunner.RunIdentity(ctx, func(movRepo repository.MovementRepository, userRepo repository.UserRepository) error {
		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		detached, err = movRepo.ClearActor(ctx, id)
		if err != nil {
			return err
		}
		ok, err := userRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteUserResponse{ID: id, MovementsDetached: detached}, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, username, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError("username", "el nombre de usuario es requerido")
	}
	if len(password) < MinPasswordLen {
		return nil, domain.NewValidationError("password", "password debe tener al menos 8 caracteres")
	}
	if role != entity.RoleAdmin && role != entity.RoleBodeguero {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrUsernameAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
