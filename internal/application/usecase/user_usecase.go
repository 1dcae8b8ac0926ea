package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

// UserUseCase administración de usuarios: listado, aprobación y activación.
type UserUseCase struct {
	repo     repository.UserRepository
	activity ports.ActivityRecorder
	events   ports.EventPublisher
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, activity ports.ActivityRecorder, events ports.EventPublisher, log *logger.Logger) *UserUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, activity: activity, events: events, log: log.Component("users")}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// List usuarios filtrados por estado (pending, approved, active, inactive) y búsqueda.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest, actor entity.Actor) ([]dto.UserResponse, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}
	in.DefaultPage()
	filter := repository.UserFilter{Search: strings.TrimSpace(in.Search), Limit: in.Limit, Offset: in.Offset}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if in.Pending {
		status = dto.UserStatusPending
	}
	yes, no := true, false
	switch status {
	case dto.UserStatusAll:
	case dto.UserStatusPending:
		filter.Approved = &no
	case dto.UserStatusApproved:
		filter.Approved = &yes
	case dto.UserStatusActive:
		filter.Active = &yes
	case dto.UserStatusInactive:
		filter.Active = &no
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// Approve aprueba la cuenta y opcionalmente asigna rol. Solo SUPER_ADMIN otorga SUPER_ADMIN.
func (uc *UserUseCase) Approve(ctx context.Context, id string, in dto.ApproveUserRequest, actor entity.Actor) (*dto.UserResponse, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role := strings.ToUpper(strings.TrimSpace(in.Role)); role != "" {
		if !entity.ValidRole(role) {
			return nil, domain.ErrInvalidInput
		}
		if role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
		user.Role = role
	}
	if user.Approved && in.Role == "" {
		resp := dto.ToUserResponse(user)
		return &resp, nil
	}

	now := time.Now()
	user.Approved = true
	user.ApprovedAt = &now
	user.ApprovedBy = actor.UserID
	user.UpdatedAt = now
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, entity.ActivityEdit,
			"Aprobó al usuario "+user.Username+" con rol "+user.Role, actor.ClientIP)
	}
	if err := uc.events.Publish(ctx, ports.NewEvent(ports.EventUserApproved, dto.UserEventPayload{
		UserID: user.ID, Username: user.Username, Role: user.Role,
	})); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo publicar user.approved")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// SetActive activa o desactiva una cuenta. No se permite desactivarse a sí mismo
// ni dejar el sistema sin SUPER_ADMIN activo (ErrConflict).
func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool, actor entity.Actor) error {
	if !actor.CanApprove() {
		return domain.ErrForbidden
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if user.Active == active {
		return nil
	}
	if !active {
		if user.ID == actor.UserID {
			return domain.ErrConflict
		}
		if user.Role == entity.RoleSuperAdmin {
			if actor.Role != entity.RoleSuperAdmin {
				return domain.ErrForbidden
			}
			n, err := uc.repo.CountActiveByRole(ctx, entity.RoleSuperAdmin)
			if err != nil {
				return err
			}
			if n <= 1 {
				return domain.ErrConflict
			}
		}
	}
	user.Active = active
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return err
	}
	if uc.activity != nil {
		kind, verb := entity.ActivityEdit, "Activó"
		if !active {
			kind, verb = entity.ActivityDelete, "Desactivó"
		}
		uc.activity.Record(ctx, actor.UserID, kind, verb+" al usuario "+user.Username, actor.ClientIP)
	}
	return nil
}

// Update edita perfil y rol de otro usuario. Solo un SUPER_ADMIN edita o promueve a SUPER_ADMIN;
// nadie cambia su propio rol y el último SUPER_ADMIN activo no puede ser degradado (ErrConflict).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest, actor entity.Actor) (*dto.UserResponse, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if !strings.EqualFold(email, user.Email) {
		existing, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role == "" {
		role = user.Role
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if role != user.Role {
		if user.ID == actor.UserID {
			return nil, domain.ErrConflict
		}
		if role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
		if user.Role == entity.RoleSuperAdmin && user.Active {
			n, err := uc.repo.CountActiveByRole(ctx, entity.RoleSuperAdmin)
			if err != nil {
				return nil, err
			}
			if n <= 1 {
				return nil, domain.ErrConflict
			}
		}
	}

	previousRole := user.Role
	user.Email = email
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Phone = strings.TrimSpace(in.Phone)
	user.Document = strings.TrimSpace(in.Document)
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if uc.activity != nil {
		desc := "Editó el usuario " + user.Username
		if previousRole != role {
			desc += " (rol " + previousRole + " → " + role + ")"
		}
		uc.activity.Record(ctx, actor.UserID, entity.ActivityEdit, desc, actor.ClientIP)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ResetPassword asigna una contraseña nueva sin conocer la anterior. La de un SUPER_ADMIN solo la resetea otro SUPER_ADMIN.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest, actor entity.Actor) error {
	if !actor.CanApprove() {
		return domain.ErrForbidden
	}
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, entity.ActivityEdit, "Reseteó la contraseña de "+user.Username, actor.ClientIP)
	}
	return nil
}

// CheckSession confirma que el titular de un token sigue activo, aprobado y con el rol que el token declara.
// Cualquier diferencia devuelve ErrUnauthorized: el cliente debe volver a iniciar sesión.
func (uc *UserUseCase) CheckSession(ctx context.Context, userID, role string) error {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || !user.Active || !user.Approved || user.Role != role {
		return domain.ErrUnauthorized
	}
	return nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
