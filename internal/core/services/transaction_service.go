package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mandibooks/billing_backend/internal/apperrors"
	"github.com/mandibooks/billing_backend/internal/core/domain"
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
	"github.com/mandibooks/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionServiceImpl is the reconciliation engine: every mutating
// operation computes the ledger and inventory deltas between the old and new
// transaction state and applies them in a fixed order. The record and the
// ledger move together in one database transaction; inventory adjustments
// are best-effort per line item, with failures collected as warnings.
type transactionServiceImpl struct {
	BaseService
	txnRepo  portsrepo.TransactionRepositoryFacade
	partySvc portssvc.PartySvcFacade
	itemSvc  portssvc.ItemSvcFacade
	notifier portssvc.Notifier
}

// NewTransactionService creates the reconciliation engine. notifier may be
// nil when no message gateway is configured.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	partySvc portssvc.PartySvcFacade,
	itemSvc portssvc.ItemSvcFacade,
	notifier portssvc.Notifier,
) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		txnRepo:  txnRepo,
		partySvc: partySvc,
		itemSvc:  itemSvc,
		notifier: notifier,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

// roleForType is the role assigned when a party is auto-created for a
// transaction: suppliers are bought from, customers are sold to.
func roleForType(t domain.TransactionType) domain.PartyRole {
	switch t {
	case domain.Purchase:
		return domain.RoleSupplier
	case domain.Sale:
		return domain.RoleCustomer
	}
	return domain.RoleGeneric
}

func flipDirection(d domain.StockDirection) domain.StockDirection {
	if d == domain.StockIncrease {
		return domain.StockDecrease
	}
	return domain.StockIncrease
}

// forwardLedgerEffect is the balance mutation a create applies. Purchases
// and sales add the total; payments in both directions subtract the amount.
func forwardLedgerEffect(t *domain.Transaction) portsrepo.LedgerEffect {
	if t.Type.IsPayment() {
		return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: t.Amount, Op: domain.BalanceSubtract}
	}
	return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: t.TotalAmount, Op: domain.BalanceAdd}
}

// reverseLedgerEffect undoes the forward effect.
func reverseLedgerEffect(t *domain.Transaction) portsrepo.LedgerEffect {
	if t.Type.IsPayment() {
		return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: t.Amount, Op: domain.BalanceAdd}
	}
	return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: t.TotalAmount, Op: domain.BalanceSubtract}
}

// deltaLedgerEffect applies the signed difference between the new and old
// totals in the type's forward operation.
func deltaLedgerEffect(t *domain.Transaction, delta decimal.Decimal) portsrepo.LedgerEffect {
	if delta.IsZero() {
		return portsrepo.LedgerEffect{}
	}
	if t.Type.IsPayment() {
		return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: delta, Op: domain.BalanceSubtract}
	}
	return portsrepo.LedgerEffect{PartyID: t.PartyID, Amount: delta, Op: domain.BalanceAdd}
}

// adjustItems applies a stock movement per line item. Failures are absorbed
// and reported as warnings so one bad item never invalidates the record.
func (s *transactionServiceImpl) adjustItems(ctx context.Context, items []domain.LineItem, dir domain.StockDirection) []string {
	var warnings []string
	for _, li := range items {
		if err := s.itemSvc.AdjustStock(ctx, li.ItemID, li.Quantity, dir); err != nil {
			s.LogWarn(ctx, "Stock adjustment failed",
				slog.String("item_id", li.ItemID),
				slog.String("direction", string(dir)),
				slog.String("error", err.Error()))
			warnings = append(warnings, fmt.Sprintf("stock adjustment (%s) failed for item %s: %v", dir, li.ItemID, err))
		}
	}
	return warnings
}

// adjustUniversal applies the aggregate bag movement to the universal item.
func (s *transactionServiceImpl) adjustUniversal(ctx context.Context, quantityKg decimal.Decimal, dir domain.StockDirection) []string {
	if quantityKg.IsZero() {
		return nil
	}
	universal, err := s.itemSvc.GetUniversalItem(ctx)
	if err != nil {
		s.LogWarn(ctx, "Universal item lookup failed", slog.String("error", err.Error()))
		return []string{fmt.Sprintf("universal item adjustment skipped: %v", err)}
	}
	if err := s.itemSvc.AdjustStock(ctx, universal.ItemID, quantityKg, dir); err != nil {
		s.LogWarn(ctx, "Universal stock adjustment failed", slog.String("error", err.Error()))
		return []string{fmt.Sprintf("universal stock adjustment (%s) failed: %v", dir, err)}
	}
	return nil
}

func validateCreateRequest(req dto.CreateTransactionRequest) error {
	if !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if req.PartyID == "" && (req.PartyName == "" || req.PartyPhone == "") {
		return fmt.Errorf("%w: either partyID or partyName and partyPhone are required", apperrors.ErrValidation)
	}
	if req.Type.IsPayment() {
		if !req.Amount.IsPositive() {
			return fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		if len(req.Items) > 0 {
			return fmt.Errorf("%w: payments cannot carry line items", apperrors.ErrValidation)
		}
		return nil
	}
	if len(req.Items) == 0 && !req.Amount.IsPositive() {
		return fmt.Errorf("%w: at least one line item or a positive amount is required", apperrors.ErrValidation)
	}
	for i, li := range req.Items {
		if li.ItemID == "" {
			return fmt.Errorf("%w: line item %d is missing itemID", apperrors.ErrValidation, i)
		}
		if !li.Quantity.IsPositive() {
			return fmt.Errorf("%w: line item %d quantity must be positive", apperrors.ErrValidation, i)
		}
	}
	return nil
}

func toDomainLineItems(items []dto.LineItemRequest) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.LineItem, len(items))
	for i, li := range items {
		out[i] = domain.LineItem{ItemID: li.ItemID, Quantity: li.Quantity, Price: li.Price}
	}
	return out
}

// CreateTransaction records a transaction: number assignment, party
// resolution, total computation, then record plus forward ledger effect in
// one database transaction, then best-effort inventory effects.
func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*dto.TransactionResult, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	var party *domain.Party
	var err error
	if req.PartyID != "" {
		party, err = s.partySvc.GetPartyByID(ctx, req.PartyID)
	} else {
		party, err = s.partySvc.FindOrCreateParty(ctx, req.PartyName, req.PartyPhone, roleForType(req.Type), userID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve transaction party")
		return nil, err
	}

	prefix := req.Type.NumberPrefix()
	seq, err := s.txnRepo.NextNumber(ctx, prefix)
	if err != nil {
		s.LogError(ctx, err, "Failed to assign transaction number", slog.String("prefix", prefix))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	txnDate := req.TxnDate
	if txnDate == "" {
		txnDate = time.Now().Format("2006-01-02")
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Number:        fmt.Sprintf("%s%d", prefix, seq),
		Type:          req.Type,
		PartyID:       party.PartyID,
		PartyName:     party.Name,
		PartyPhone:    party.Phone,
		Items:         toDomainLineItems(req.Items),
		Amount:        req.Amount,
		TxnDate:       txnDate,
		Status:        status,
		DocumentURL:   req.DocumentURL,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	txn.RecomputeTotal()

	if err := s.txnRepo.SaveTransaction(ctx, txn, forwardLedgerEffect(&txn)); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("number", txn.Number))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("number", txn.Number),
		slog.String("type", string(txn.Type)))

	var warnings []string
	if txn.Type.HasLineItems() && len(txn.Items) > 0 {
		dir := txn.Type.StockDirection()
		warnings = append(warnings, s.adjustItems(ctx, txn.Items, dir)...)
		warnings = append(warnings, s.adjustUniversal(ctx, domain.SumQuantities(txn.Items), dir)...)
	}

	result := &dto.TransactionResult{
		Transaction:       dto.ToTransactionResponse(&txn),
		InventoryWarnings: warnings,
	}
	if req.SendMessage {
		sent := s.notifyParty(ctx, &txn)
		result.MessageSent = &sent
	}
	return result, nil
}

// UpdateTransaction applies field changes, recomputes the total, and applies
// the delta effects. When the line items changed structurally, every old item
// effect is reversed and every new one applied, with the net difference going
// to the universal item.
func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResult, error) {
	old, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *old
	if req.TxnDate != nil {
		updated.TxnDate = *req.TxnDate
	}
	if req.Amount != nil {
		if updated.Type.IsPayment() && !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
	}
	if req.DocumentURL != nil {
		updated.DocumentURL = *req.DocumentURL
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Items != nil {
		if updated.Type.IsPayment() && len(*req.Items) > 0 {
			return nil, fmt.Errorf("%w: payments cannot carry line items", apperrors.ErrValidation)
		}
		for i, li := range *req.Items {
			if li.ItemID == "" || !li.Quantity.IsPositive() {
				return nil, fmt.Errorf("%w: line item %d is invalid", apperrors.ErrValidation, i)
			}
		}
		updated.Items = toDomainLineItems(*req.Items)
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID
	updated.RecomputeTotal()

	delta := updated.TotalAmount.Sub(old.TotalAmount)
	if err := s.txnRepo.UpdateTransaction(ctx, updated, deltaLedgerEffect(&updated, delta)); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("total_delta", delta.String()))

	var warnings []string
	if updated.Type.HasLineItems() && req.Items != nil && !domain.LineItemsEqual(old.Items, updated.Items) {
		dir := updated.Type.StockDirection()
		warnings = append(warnings, s.adjustItems(ctx, old.Items, flipDirection(dir))...)
		warnings = append(warnings, s.adjustItems(ctx, updated.Items, dir)...)

		net := domain.SumQuantities(updated.Items).Sub(domain.SumQuantities(old.Items))
		if net.IsPositive() {
			warnings = append(warnings, s.adjustUniversal(ctx, net, dir)...)
		} else if net.IsNegative() {
			warnings = append(warnings, s.adjustUniversal(ctx, net.Neg(), flipDirection(dir))...)
		}
	}

	return &dto.TransactionResult{
		Transaction:       dto.ToTransactionResponse(&updated),
		InventoryWarnings: warnings,
	}, nil
}

// UpdateTransactionStatus performs an explicit status transition. Only the
// completed<->cancelled pair re-invokes the ledger: entering cancelled
// reverses the create-time effect, re-entering completed applies it again.
// Transitions involving pending never touch the ledger.
func (s *transactionServiceImpl) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string) (*domain.Transaction, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(txn.Status, status) {
		return nil, fmt.Errorf("%w: cannot transition status from %s to %s", apperrors.ErrValidation, txn.Status, status)
	}

	var effect portsrepo.LedgerEffect
	switch {
	case txn.Status == domain.StatusCompleted && status == domain.StatusCancelled:
		effect = reverseLedgerEffect(txn)
	case txn.Status == domain.StatusCancelled && status == domain.StatusCompleted:
		effect = forwardLedgerEffect(txn)
	}

	now := time.Now()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, status, effect, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("from", string(txn.Status)),
		slog.String("to", string(status)))

	txn.Status = status
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, nil
}

// DeleteTransaction reverses every effect the transaction applied, then
// removes the record. Inventory reversals run first and are best-effort;
// the ledger reversal and the record removal share one database transaction,
// with the removal last.
func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, transactionID string) ([]string, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if txn.Type.HasLineItems() && len(txn.Items) > 0 {
		reverseDir := flipDirection(txn.Type.StockDirection())
		warnings = append(warnings, s.adjustItems(ctx, txn.Items, reverseDir)...)
		warnings = append(warnings, s.adjustUniversal(ctx, domain.SumQuantities(txn.Items), reverseDir)...)
	}

	effect := reverseLedgerEffect(txn)
	if txn.Type.IsPayment() && txn.Status != domain.StatusCompleted {
		// Only a settled payment moved the balance on creation.
		effect = portsrepo.LedgerEffect{}
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, effect); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return warnings, err
	}
	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("number", txn.Number))
	return warnings, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		Type:    domain.TransactionType(params.Type),
		PartyID: params.PartyID,
		Status:  domain.TransactionStatus(params.Status),
		Search:  params.Search,
		Limit:   params.Limit,
		Offset:  params.Offset,
	})
}

func typeLabel(t domain.TransactionType) string {
	switch t {
	case domain.Purchase:
		return "Purchase"
	case domain.Sale:
		return "Sale"
	case domain.PaymentIn:
		return "Payment received"
	case domain.PaymentOut:
		return "Payment made"
	}
	return "Transaction"
}

// notifyParty sends the confirmation message for a freshly created
// transaction. Delivery failures are logged and reported through the
// messageSent flag; they never fail the operation.
func (s *transactionServiceImpl) notifyParty(ctx context.Context, txn *domain.Transaction) bool {
	if s.notifier == nil || txn.PartyPhone == "" {
		return false
	}

	message := fmt.Sprintf("%s %s recorded for %s. Amount: %s", typeLabel(txn.Type), txn.Number, txn.PartyName, txn.TotalAmount.StringFixed(2))

	var err error
	if txn.DocumentURL != "" {
		err = s.notifier.SendDocument(ctx, txn.PartyPhone, message, txn.DocumentURL, txn.Number+".pdf")
	} else {
		err = s.notifier.Send(ctx, txn.PartyPhone, message)
	}
	if err != nil {
		s.LogWarn(ctx, "Failed to send transaction message",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
		return false
	}
	return true
}
