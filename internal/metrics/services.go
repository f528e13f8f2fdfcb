package metrics

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// journalService counts the writes of a JournalSvcFacade. Reads pass through.
type journalService struct {
	portssvc.JournalSvcFacade
	m *Metrics
}

// InstrumentJournal wraps svc so that every write is counted by outcome.
func InstrumentJournal(svc portssvc.JournalSvcFacade, m *Metrics) portssvc.JournalSvcFacade {
	if m == nil {
		return svc
	}
	return &journalService{JournalSvcFacade: svc, m: m}
}

func (s *journalService) CreateJournalEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	start := time.Now()
	entry, err := s.JournalSvcFacade.CreateJournalEntry(ctx, workplaceID, req, userID)
	s.m.observe("journal", "create", start, err)
	return entry, err
}

func (s *journalService) UpdateJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	start := time.Now()
	entry, err := s.JournalSvcFacade.UpdateJournalEntry(ctx, workplaceID, entryID, req, userID)
	s.m.observe("journal", "update", start, err)
	return entry, err
}

func (s *journalService) PostJournalEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error) {
	start := time.Now()
	entry, err := s.JournalSvcFacade.PostJournalEntry(ctx, workplaceID, entryID, userID)
	s.m.observe("journal", "post", start, err)
	return entry, err
}

func (s *journalService) ReverseJournalEntry(ctx context.Context, workplaceID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	start := time.Now()
	entry, err := s.JournalSvcFacade.ReverseJournalEntry(ctx, workplaceID, entryID, req, userID)
	s.m.observe("journal", "reverse", start, err)
	return entry, err
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, workplaceID, entryID, userID string) error {
	start := time.Now()
	err := s.JournalSvcFacade.DeleteJournalEntry(ctx, workplaceID, entryID, userID)
	s.m.observe("journal", "delete", start, err)
	return err
}

// operationService counts the writes of an OperationSvcFacade.
type operationService struct {
	portssvc.OperationSvcFacade
	m *Metrics
}

// InstrumentOperation wraps svc so that every composed or cancelled voucher is counted by outcome.
func InstrumentOperation(svc portssvc.OperationSvcFacade, m *Metrics) portssvc.OperationSvcFacade {
	if m == nil {
		return svc
	}
	return &operationService{OperationSvcFacade: svc, m: m}
}

func (s *operationService) CreateReceipt(ctx context.Context, workplaceID string, req dto.CreateReceiptRequest, userID string) (*domain.VoucherDetails, error) {
	start := time.Now()
	v, err := s.OperationSvcFacade.CreateReceipt(ctx, workplaceID, req, userID)
	s.m.observe("operation", "receipt", start, err)
	return v, err
}

func (s *operationService) CreatePayment(ctx context.Context, workplaceID string, req dto.CreatePaymentRequest, userID string) (*domain.VoucherDetails, error) {
	start := time.Now()
	v, err := s.OperationSvcFacade.CreatePayment(ctx, workplaceID, req, userID)
	s.m.observe("operation", "payment", start, err)
	return v, err
}

func (s *operationService) CreateTransfer(ctx context.Context, workplaceID string, req dto.CreateTransferRequest, userID string) (*domain.VoucherDetails, error) {
	start := time.Now()
	v, err := s.OperationSvcFacade.CreateTransfer(ctx, workplaceID, req, userID)
	s.m.observe("operation", "transfer", start, err)
	return v, err
}

func (s *operationService) CancelVoucher(ctx context.Context, workplaceID, voucherID string, req dto.CancelVoucherRequest, userID string) (*domain.VoucherDetails, error) {
	start := time.Now()
	v, err := s.OperationSvcFacade.CancelVoucher(ctx, workplaceID, voucherID, req, userID)
	s.m.observe("operation", "cancel", start, err)
	return v, err
}

// Instrument wraps the journal and operation services of c in place.
func Instrument(c *portssvc.ServiceContainer, m *Metrics) {
	c.Journal = InstrumentJournal(c.Journal, m)
	c.Operation = InstrumentOperation(c.Operation, m)
}
