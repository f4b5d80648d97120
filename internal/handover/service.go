package handover

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for handovers
type Repository interface {
	Create(ctx context.Context, h *Handover) error
	GetByID(ctx context.Context, id string) (*Handover, error)
	List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) ([]*Handover, error)
	Update(ctx context.Context, h *Handover) error
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) ([]*Handover, error) {
	scope, rel, err := s.authz.ListFilters(actor, requestedHospitalID, accesscontrol.HandoverRelation)
	if err != nil {
		return nil, err
	}

	handovers, err := s.repo.List(ctx, scope, rel)
	if err != nil {
		s.logger.Error("failed to list handovers", "error", err)
		return nil, err
	}
	return handovers, nil
}

// Create records a handover authored by the actor. Every linked reference
// is verified to live in the same hospital before the row is written.
func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateHandoverDTO) (*Handover, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hospitalID, err := s.authz.WriteScope(actor, dto.HospitalID)
	if err != nil {
		return nil, err
	}
	if hospitalID == "" {
		return nil, internal.NewValidationError("hospital_id is required", internal.ErrCodeValidationFailed)
	}

	if err := s.guardLinks(ctx, hospitalID, dto.DepartmentID, dto.PatientID, dto.ShiftID, dto.ToUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	h := &Handover{
		ID:           uuid.NewString(),
		HospitalID:   hospitalID,
		DepartmentID: dto.DepartmentID,
		PatientID:    dto.PatientID,
		ShiftID:      dto.ShiftID,
		FromUserID:   actor.ID,
		ToUserID:     dto.ToUserID,
		Notes:        dto.Notes,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("failed to create handover", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("handover created", "handover_id", h.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return h, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*Handover, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Update patches a handover; linked references introduced by the patch
// are re-validated against the stored row's hospital.
func (s *Service) Update(ctx context.Context, actor *accesscontrol.Actor, id string, dto UpdateHandoverDTO) (*Handover, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, h); err != nil {
		return nil, err
	}

	if err := s.guardLinks(ctx, h.HospitalID, dto.DepartmentID, dto.PatientID, dto.ShiftID, dto.ToUserID); err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil {
		h.DepartmentID = dto.DepartmentID
	}
	if dto.PatientID != nil {
		h.PatientID = dto.PatientID
	}
	if dto.ShiftID != nil {
		h.ShiftID = dto.ShiftID
	}
	if dto.ToUserID != nil {
		h.ToUserID = dto.ToUserID
	}
	if dto.Notes != nil {
		h.Notes = dto.Notes
	}
	if dto.IsActive != nil {
		h.IsActive = *dto.IsActive
	}
	h.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("failed to update handover", "error", err, "handover_id", id)
		return nil, err
	}

	s.logger.Info("handover updated", "handover_id", id, "actor_id", actor.ID)
	return h, nil
}

func (s *Service) canRead(actor *accesscontrol.Actor, h *Handover) error {
	return s.authz.CanAccessRecord(actor, h.HospitalID, accesscontrol.HandoverRelation, &h.FromUserID, h.ToUserID)
}

func (s *Service) guardLinks(ctx context.Context, hospitalID string, departmentID, patientID, shiftID, toUserID *string) error {
	if departmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *departmentID, hospitalID); err != nil {
			return err
		}
	}
	if patientID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "patients", "patient_id", *patientID, hospitalID); err != nil {
			return err
		}
	}
	if shiftID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "shifts", "shift_id", *shiftID, hospitalID); err != nil {
			return err
		}
	}
	if toUserID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "to_user_id", *toUserID, hospitalID); err != nil {
			return err
		}
	}
	return nil
}
