package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func (s *Store) FindAccountTypeByID(ctx context.Context, workplaceID, typeID string) (*domain.AccountTypeDefinition, error) {
	var out *domain.AccountTypeDefinition
	err := s.read(ctx, func(st *state) error {
		d, ok := st.accountTypes[typeID]
		if !ok || d.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("account type", typeID)
		}
		out = &d
		return nil
	})
	return out, err
}

func (s *Store) FindAccountTypeByCode(ctx context.Context, workplaceID, typeCode string) (*domain.AccountTypeDefinition, error) {
	var out *domain.AccountTypeDefinition
	err := s.read(ctx, func(st *state) error {
		for _, d := range st.accountTypes {
			if d.WorkplaceID == workplaceID && d.TypeCode == typeCode {
				out = &d
				return nil
			}
		}
		return apperrors.NewNotFoundError("account type", typeCode)
	})
	return out, err
}

func (s *Store) ListAccountTypes(ctx context.Context, workplaceID string, filter domain.AccountTypeFilter) ([]domain.AccountTypeDefinition, error) {
	var out []domain.AccountTypeDefinition
	err := s.read(ctx, func(st *state) error {
		for _, d := range st.accountTypes {
			if d.WorkplaceID == workplaceID && filter.Matches(d) {
				out = append(out, d)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (s *Store) IsAccountTypeInUse(ctx context.Context, workplaceID, typeCode string) (bool, error) {
	var found bool
	err := s.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.WorkplaceID == workplaceID && a.TypeCode == typeCode {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func checkAccountTypeUnique(st *state, def domain.AccountTypeDefinition) error {
	for _, other := range st.accountTypes {
		if other.WorkplaceID == def.WorkplaceID && other.TypeID != def.TypeID && other.TypeCode == def.TypeCode {
			return apperrors.NewDuplicateError("account type code %s already exists", def.TypeCode)
		}
	}
	return nil
}

func (s *Store) SaveAccountType(ctx context.Context, def domain.AccountTypeDefinition) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.accountTypes[def.TypeID]; ok {
			return apperrors.NewDuplicateError("account type %s already exists", def.TypeID)
		}
		if err := checkAccountTypeUnique(st, def); err != nil {
			return err
		}
		st.accountTypes[def.TypeID] = def
		return nil
	})
}

func (s *Store) UpdateAccountType(ctx context.Context, def domain.AccountTypeDefinition) error {
	return s.write(ctx, func(st *state) error {
		existing, ok := st.accountTypes[def.TypeID]
		if !ok || existing.WorkplaceID != def.WorkplaceID {
			return apperrors.NewNotFoundError("account type", def.TypeID)
		}
		if err := checkAccountTypeUnique(st, def); err != nil {
			return err
		}
		st.accountTypes[def.TypeID] = def
		return nil
	})
}

func (s *Store) DeleteAccountType(ctx context.Context, workplaceID, typeID string) error {
	return s.write(ctx, func(st *state) error {
		d, ok := st.accountTypes[typeID]
		if !ok || d.WorkplaceID != workplaceID {
			return apperrors.NewNotFoundError("account type", typeID)
		}
		delete(st.accountTypes, typeID)
		return nil
	})
}
