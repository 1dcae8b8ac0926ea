package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/jwt"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	activity ports.ActivityRecorder
	events   ports.EventPublisher
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	activity ports.ActivityRecorder,
	events ports.EventPublisher,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, activity: activity, events: events, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// RegisterUser crea una cuenta EMPLOYEE pendiente de aprobación.
// Devuelve ErrEmailAlreadyExists o ErrDuplicate (username) si ya existen.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest, clientIP string) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if uc.activity != nil {
		uc.activity.Record(ctx, user.ID, entity.ActivityCreate, "Registro de cuenta pendiente de aprobación", clientIP)
	}
	if err := uc.events.Publish(ctx, ports.NewEvent(ports.EventUserRegistered, dto.UserEventPayload{
		UserID: user.ID, Username: user.Username, Role: user.Role,
	})); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo publicar user.registered")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// CreateSuperAdmin crea una cuenta SUPER_ADMIN ya aprobada. Solo para el arranque inicial (CLI).
func (uc *AuthUseCase) CreateSuperAdmin(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	user.Role = entity.RoleSuperAdmin
	user.Approved = true
	user.ApprovedAt = &user.CreatedAt
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// newUser valida unicidad y arma un EMPLOYEE activo sin aprobar.
func (uc *AuthUseCase) newUser(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, err := uc.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         entity.RoleEmployee,
		Phone:        in.Phone,
		Document:     in.Document,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Login verifica credenciales (username o email), exige cuenta aprobada y activa, y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	ident := strings.TrimSpace(in.Username)
	if ident == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		user *entity.User
		err  error
	)
	if strings.Contains(ident, "@") {
		user, err = uc.userRepo.GetByEmail(ctx, strings.ToLower(ident))
	} else {
		user, err = uc.userRepo.GetByUsername(ctx, ident)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Approved {
		return nil, domain.ErrAccountPending
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, user.ID, entity.ActivityLogin, "Inició sesión", clientIP)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// ChangePassword cambia la contraseña del propio usuario verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, in dto.ChangePasswordRequest, actor entity.Actor) error {
	if in.CurrentPassword == "" || len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, user.ID, entity.ActivityEdit, "Cambió su contraseña", actor.ClientIP)
	}
	return nil
}

// Logout registra el cierre de sesión. El token expira por sí solo (sin lista de revocación).
func (uc *AuthUseCase) Logout(ctx context.Context, actor entity.Actor) {
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, entity.ActivityLogout, "Cerró sesión", actor.ClientIP)
	}
}
