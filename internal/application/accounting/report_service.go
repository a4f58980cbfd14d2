package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gulfbooks/backend/internal/domain/accounting"
	"github.com/gulfbooks/backend/internal/domain/trade"
)

// ReportService produces the accounting reports. Trial balance and
// income statement are derived exclusively from journal lines, not from
// the cached account balances; the VAT summary comes straight from the
// trade documents.
type ReportService struct {
	accountRepo  accounting.AccountRepository
	entryRepo    accounting.JournalEntryRepository
	saleRepo     trade.SaleRepository
	purchaseRepo trade.PurchaseRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	accountRepo accounting.AccountRepository,
	entryRepo accounting.JournalEntryRepository,
	saleRepo trade.SaleRepository,
	purchaseRepo trade.PurchaseRepository,
) *ReportService {
	return &ReportService{
		accountRepo:  accountRepo,
		entryRepo:    entryRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
	}
}

// ===================== Response DTOs =====================

// VATSummaryResponse is the VAT position for a reporting period
type VATSummaryResponse struct {
	PeriodFrom    time.Time       `json:"period_from"`
	PeriodTo      time.Time       `json:"period_to"`
	OutputVAT     decimal.Decimal `json:"output_vat"`
	InputVAT      decimal.Decimal `json:"input_vat"`
	NetVATPayable decimal.Decimal `json:"net_vat_payable"`
}

// TrialBalanceRow is one account line on the trial balance
type TrialBalanceRow struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
	Side        string          `json:"side"`
}

// TrialBalanceResponse is the full trial balance as of a date
type TrialBalanceResponse struct {
	AsOf         time.Time         `json:"as_of"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"total_debits"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
	Balanced     bool              `json:"balanced"`
}

// IncomeStatementResponse summarizes revenue and expenses for a period
type IncomeStatementResponse struct {
	PeriodFrom    time.Time       `json:"period_from"`
	PeriodTo      time.Time       `json:"period_to"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// ===================== Operations =====================

// VATSummary totals output and input VAT over non-cancelled documents
// dated in the inclusive [from, to] range. The net payable is clamped
// at zero; refund positions report as zero.
func (s *ReportService) VATSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*VATSummaryResponse, error) {
	outputVAT, err := s.saleRepo.SumOutputVAT(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	inputVAT, err := s.purchaseRepo.SumInputVAT(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return &VATSummaryResponse{
		PeriodFrom:    from,
		PeriodTo:      to,
		OutputVAT:     outputVAT,
		InputVAT:      inputVAT,
		NetVATPayable: accounting.NetVATPayable(outputVAT, inputVAT),
	}, nil
}

// TrialBalance lists every active account with its journal activity on
// or before asOf. Accounts without any posted line appear with zero
// totals on the debit side.
func (s *ReportService) TrialBalance(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*TrialBalanceResponse, error) {
	activity, err := s.entryRepo.ActivityByAccount(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.List(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}
	byAccount := make(map[uuid.UUID]accounting.AccountActivity, len(activity))
	for _, act := range activity {
		byAccount[act.AccountID] = act
	}

	response := &TrialBalanceResponse{
		AsOf:         asOf,
		Rows:         make([]TrialBalanceRow, 0, len(accounts)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, account := range accounts {
		row := TrialBalanceRow{
			AccountID:   account.ID,
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.Type.String(),
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		if act, ok := byAccount[account.ID]; ok {
			row.TotalDebit = act.TotalDebit
			row.TotalCredit = act.TotalCredit
		}
		balance, side := accounting.ReportedBalance(row.TotalDebit.Sub(row.TotalCredit))
		row.Balance = balance
		row.Side = string(side)

		response.Rows = append(response.Rows, row)
		response.TotalDebits = response.TotalDebits.Add(row.TotalDebit)
		response.TotalCredits = response.TotalCredits.Add(row.TotalCredit)
	}
	response.Balanced = response.TotalDebits.Equal(response.TotalCredits)
	return response, nil
}

// IncomeStatement sums credit activity on revenue accounts and debit
// activity on expense accounts for entries dated in [from, to].
func (s *ReportService) IncomeStatement(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*IncomeStatementResponse, error) {
	revenue, err := s.entryRepo.ActivityByAccountBetween(ctx, tenantID, from, to, accounting.AccountTypeRevenue)
	if err != nil {
		return nil, err
	}
	expenses, err := s.entryRepo.ActivityByAccountBetween(ctx, tenantID, from, to, accounting.AccountTypeExpense)
	if err != nil {
		return nil, err
	}

	// Revenue accumulates on credit lines, expenses on debit lines.
	totalRevenue := decimal.Zero
	for _, act := range revenue {
		totalRevenue = totalRevenue.Add(act.TotalCredit)
	}
	totalExpenses := decimal.Zero
	for _, act := range expenses {
		totalExpenses = totalExpenses.Add(act.TotalDebit)
	}

	return &IncomeStatementResponse{
		PeriodFrom:    from,
		PeriodTo:      to,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}, nil
}
