package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// systemSeedUser is recorded as the creator of lazily seeded system types.
const systemSeedUser = "system"

type accountTypeService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	typeRepo portsrepo.AccountTypeRepositoryFacade
}

// NewAccountTypeService creates the account type catalog.
func NewAccountTypeService(uow portsrepo.UnitOfWork, typeRepo portsrepo.AccountTypeRepositoryFacade) portssvc.AccountTypeSvcFacade {
	return &accountTypeService{uow: uow, typeRepo: typeRepo}
}

var _ portssvc.AccountTypeSvcFacade = (*accountTypeService)(nil)

// ensureSystemTypes inserts whichever of the five system types the workplace lacks.
// It runs in the caller's unit of work, so a rollback drops the seed as well.
func (s *accountTypeService) ensureSystemTypes(ctx context.Context, workplaceID string) error {
	existing, err := s.typeRepo.ListAccountTypes(ctx, workplaceID, domain.AccountTypeFilter{IncludeInactive: true})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[d.TypeCode] = true
	}
	for _, def := range domain.SystemAccountTypes(workplaceID, systemSeedUser, s.now()) {
		if have[def.TypeCode] {
			continue
		}
		def.TypeID = uuid.NewString()
		if err := s.typeRepo.SaveAccountType(ctx, def); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		s.LogDebug(ctx, "System account type seeded",
			slog.String("workplace_id", workplaceID), slog.String("type_code", def.TypeCode))
	}
	return nil
}

func (s *accountTypeService) ResolveAccountType(ctx context.Context, workplaceID, typeCode string) (*domain.AccountTypeDefinition, error) {
	code := domain.NormalizeTypeCode(typeCode)
	if code == "" {
		return nil, apperrors.NewValidationError("account type is required")
	}
	var def *domain.AccountTypeDefinition
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		found, err := s.typeRepo.FindAccountTypeByCode(ctx, workplaceID, code)
		if errors.Is(err, apperrors.ErrNotFound) && domain.AccountType(code).Valid() {
			if err := s.ensureSystemTypes(ctx, workplaceID); err != nil {
				return err
			}
			found, err = s.typeRepo.FindAccountTypeByCode(ctx, workplaceID, code)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("unknown account type %q", code)
		}
		if err != nil {
			return err
		}
		if !found.IsActive {
			return apperrors.NewValidationError("account type %s is inactive", code)
		}
		def = found
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to resolve account type",
			slog.String("workplace_id", workplaceID), slog.String("type_code", code))
	}
	return def, nil
}

func (s *accountTypeService) CreateAccountType(ctx context.Context, workplaceID string, req dto.CreateAccountTypeRequest, userID string) (*domain.AccountTypeDefinition, error) {
	code := domain.NormalizeTypeCode(req.TypeCode)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("account type code and name are required")
	}
	if !req.Classification.Valid() {
		return nil, apperrors.NewValidationError("unknown classification %q", req.Classification)
	}

	def := domain.AccountTypeDefinition{
		TypeID:         uuid.NewString(),
		WorkplaceID:    workplaceID,
		TypeCode:       code,
		Name:           name,
		NameEn:         req.NameEn,
		Description:    req.Description,
		Classification: req.Classification,
		Color:          req.Color,
		Icon:           req.Icon,
		DisplayOrder:   req.DisplayOrder,
		IsActive:       boolOr(req.IsActive, true),
		SubSystemID:    req.SubSystemID,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureSystemTypes(ctx, workplaceID); err != nil {
			return err
		}
		if err := s.ensureCodeAvailable(ctx, workplaceID, code, ""); err != nil {
			return err
		}
		return s.typeRepo.SaveAccountType(ctx, def)
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to create account type",
			slog.String("workplace_id", workplaceID), slog.String("type_code", code))
	}

	s.LogInfo(ctx, "Account type created",
		slog.String("type_id", def.TypeID),
		slog.String("type_code", def.TypeCode),
		slog.String("classification", string(def.Classification)))
	return &def, nil
}

func (s *accountTypeService) ensureCodeAvailable(ctx context.Context, workplaceID, code, exceptID string) error {
	existing, err := s.typeRepo.FindAccountTypeByCode(ctx, workplaceID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.TypeID != exceptID {
		return apperrors.NewDuplicateError("account type code %s already exists", code)
	}
	return nil
}

func (s *accountTypeService) UpdateAccountType(ctx context.Context, workplaceID, typeID string, req dto.UpdateAccountTypeRequest, userID string) (*domain.AccountTypeDefinition, error) {
	var updated *domain.AccountTypeDefinition
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		def, err := s.typeRepo.FindAccountTypeByID(ctx, workplaceID, typeID)
		if err != nil {
			return err
		}
		if def.IsSystemType {
			return apperrors.NewValidationError("system account type %s cannot be modified", def.TypeCode)
		}
		oldCode := def.TypeCode

		codeChanged := false
		if req.TypeCode != nil {
			code := domain.NormalizeTypeCode(*req.TypeCode)
			if code == "" {
				return apperrors.NewValidationError("account type code cannot be blank")
			}
			if code != def.TypeCode {
				if err := s.ensureCodeAvailable(ctx, workplaceID, code, typeID); err != nil {
					return err
				}
				codeChanged = true
			}
			def.TypeCode = code
		}
		classChanged := false
		if req.Classification != nil {
			if !req.Classification.Valid() {
				return apperrors.NewValidationError("unknown classification %q", *req.Classification)
			}
			classChanged = *req.Classification != def.Classification
			def.Classification = *req.Classification
		}
		if codeChanged || classChanged {
			inUse, err := s.typeRepo.IsAccountTypeInUse(ctx, workplaceID, oldCode)
			if err != nil {
				return err
			}
			if inUse {
				return apperrors.NewIntegrityError("account type %s is used by accounts; its code and classification are fixed", oldCode)
			}
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationError("account type name cannot be blank")
			}
			def.Name = name
		}
		if req.NameEn != nil {
			def.NameEn = req.NameEn
		}
		if req.Description != nil {
			def.Description = req.Description
		}
		if req.Color != nil {
			def.Color = req.Color
		}
		if req.Icon != nil {
			def.Icon = req.Icon
		}
		if req.DisplayOrder != nil {
			def.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			def.IsActive = *req.IsActive
		}
		if req.SubSystemID != nil {
			def.SubSystemID = req.SubSystemID
		}

		def.Touch(userID, s.now())
		if err := s.typeRepo.UpdateAccountType(ctx, *def); err != nil {
			return err
		}
		updated = def
		return nil
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to update account type",
			slog.String("workplace_id", workplaceID), slog.String("type_id", typeID))
	}
	s.LogInfo(ctx, "Account type updated", slog.String("type_id", typeID))
	return updated, nil
}

func (s *accountTypeService) DeleteAccountType(ctx context.Context, workplaceID, typeID, userID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		def, err := s.typeRepo.FindAccountTypeByID(ctx, workplaceID, typeID)
		if err != nil {
			return err
		}
		if def.IsSystemType {
			return apperrors.NewValidationError("system account type %s cannot be deleted", def.TypeCode)
		}
		inUse, err := s.typeRepo.IsAccountTypeInUse(ctx, workplaceID, def.TypeCode)
		if err != nil {
			return err
		}
		if inUse {
			return apperrors.NewIntegrityError("account type %s is used by accounts", def.TypeCode)
		}
		return s.typeRepo.DeleteAccountType(ctx, workplaceID, typeID)
	})
	if err != nil {
		return s.LogUnexpected(ctx, err, "Failed to delete account type",
			slog.String("workplace_id", workplaceID), slog.String("type_id", typeID))
	}
	s.LogInfo(ctx, "Account type deleted", slog.String("type_id", typeID), slog.String("user_id", userID))
	return nil
}

func (s *accountTypeService) GetAccountType(ctx context.Context, workplaceID, typeID string) (*domain.AccountTypeDefinition, error) {
	def, err := s.typeRepo.FindAccountTypeByID(ctx, workplaceID, typeID)
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to get account type", slog.String("type_id", typeID))
	}
	return def, nil
}

func (s *accountTypeService) ListAccountTypes(ctx context.Context, workplaceID string, filter domain.AccountTypeFilter) ([]domain.AccountTypeDefinition, error) {
	var defs []domain.AccountTypeDefinition
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureSystemTypes(ctx, workplaceID); err != nil {
			return err
		}
		var err error
		defs, err = s.typeRepo.ListAccountTypes(ctx, workplaceID, filter)
		return err
	})
	if err != nil {
		return nil, s.LogUnexpected(ctx, err, "Failed to list account types", slog.String("workplace_id", workplaceID))
	}
	if defs == nil {
		return []domain.AccountTypeDefinition{}, nil
	}
	return defs, nil
}

func (s *accountTypeService) ListSubTypes(_ context.Context) []domain.SubTypeInfo {
	return domain.AccountSubTypes()
}
