package accounting

import (
	"context"

	"github.com/google/uuid"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/shared"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// PostingService turns finalized trade documents into balanced journal
// entries against the fixed chart-of-accounts codes. Posting writes the
// entry, its lines and the cached account balances together; callers
// are expected to invoke it inside the document creation transaction so
// the document and its entry commit or roll back as one.
type PostingService struct {
	accountRepo accounting.AccountRepository
	entryRepo   accounting.JournalEntryRepository
}

// NewPostingService creates a new PostingService
func NewPostingService(accountRepo accounting.AccountRepository, entryRepo accounting.JournalEntryRepository) *PostingService {
	return &PostingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// PostSaleEntry records the ledger side of a sales invoice:
//
//	debit  1010 Cash / Receivable   total amount
//	credit 4100 Sales Revenue       net amount
//	credit 2100 VAT Payable         output VAT
//
// The cash debit carries the full invoice total regardless of how much
// was actually received, so the entry always balances.
func (s *PostingService) PostSaleEntry(ctx context.Context, sale *trade.Sale) (*accounting.JournalEntry, error) {
	accounts, err := s.resolveAccounts(ctx, sale.TenantID,
		accounting.AccountCodeCash,
		accounting.AccountCodeSalesRevenue,
		accounting.AccountCodeVATPayable,
	)
	if err != nil {
		return nil, err
	}

	lines := make([]accounting.JournalEntryLine, 0, 3)

	debit, err := accounting.DebitLine(accounts[accounting.AccountCodeCash].ID, sale.TotalAmount, "Sale "+sale.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	lines = append(lines, debit)

	revenue, err := accounting.CreditLine(accounts[accounting.AccountCodeSalesRevenue].ID, sale.NetAmount(), "Revenue "+sale.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	lines = append(lines, revenue)

	if sale.OutputVAT.IsPositive() {
		vat, err := accounting.CreditLine(accounts[accounting.AccountCodeVATPayable].ID, sale.OutputVAT, "Output VAT "+sale.InvoiceNumber)
		if err != nil {
			return nil, err
		}
		lines = append(lines, vat)
	}

	entry, err := accounting.NewJournalEntry(
		sale.TenantID,
		sale.CreatedBy,
		accounting.SaleEntryReference(sale.InvoiceNumber),
		sale.InvoiceDate,
		accounting.EntryTypeSale,
		"Sales invoice "+sale.InvoiceNumber,
		lines,
	)
	if err != nil {
		return nil, err
	}

	return entry, s.post(ctx, entry)
}

// PostPurchaseEntry records the ledger side of a purchase order:
//
//	debit  1020 Inventory           net amount
//	debit  2200 VAT Recoverable     input VAT
//	credit 5100 Purchases           total amount
func (s *PostingService) PostPurchaseEntry(ctx context.Context, purchase *trade.Purchase) (*accounting.JournalEntry, error) {
	accounts, err := s.resolveAccounts(ctx, purchase.TenantID,
		accounting.AccountCodeInventory,
		accounting.AccountCodeVATRecoverable,
		accounting.AccountCodePurchases,
	)
	if err != nil {
		return nil, err
	}

	lines := make([]accounting.JournalEntryLine, 0, 3)

	inventory, err := accounting.DebitLine(accounts[accounting.AccountCodeInventory].ID, purchase.NetAmount(), "Inventory "+purchase.OrderNumber)
	if err != nil {
		return nil, err
	}
	lines = append(lines, inventory)

	if purchase.InputVAT.IsPositive() {
		vat, err := accounting.DebitLine(accounts[accounting.AccountCodeVATRecoverable].ID, purchase.InputVAT, "Input VAT "+purchase.OrderNumber)
		if err != nil {
			return nil, err
		}
		lines = append(lines, vat)
	}

	credit, err := accounting.CreditLine(accounts[accounting.AccountCodePurchases].ID, purchase.TotalAmount, "Purchase "+purchase.OrderNumber)
	if err != nil {
		return nil, err
	}
	lines = append(lines, credit)

	entry, err := accounting.NewJournalEntry(
		purchase.TenantID,
		purchase.CreatedBy,
		accounting.PurchaseEntryReference(purchase.OrderNumber),
		purchase.OrderDate,
		accounting.EntryTypePurchase,
		"Purchase order "+purchase.OrderNumber,
		lines,
	)
	if err != nil {
		return nil, err
	}

	return entry, s.post(ctx, entry)
}

// post saves the entry and folds every line into the cached balance of
// the account it touches, debit minus credit.
func (s *PostingService) post(ctx context.Context, entry *accounting.JournalEntry) error {
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return err
	}
	for _, line := range entry.Lines {
		delta := line.SignedDelta()
		if delta.IsZero() {
			continue
		}
		if err := s.accountRepo.AdjustBalance(ctx, entry.TenantID, line.AccountID(), delta); err != nil {
			return err
		}
	}
	return nil
}

// resolveAccounts loads the posting accounts for the given codes and
// fails with MISSING_ACCOUNT naming the first absent code.
func (s *PostingService) resolveAccounts(ctx context.Context, tenantID uuid.UUID, codes ...string) (map[string]*accounting.Account, error) {
	accounts, err := s.accountRepo.FindByCodes(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		account, ok := accounts[code]
		if !ok || !account.IsActive {
			return nil, shared.NewDomainError("MISSING_ACCOUNT", "Ledger account "+code+" is not configured")
		}
	}
	return accounts, nil
}
