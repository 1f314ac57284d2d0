package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
)

// typeKeywords maps each inferable type to its description keywords.
// Precedence is fixed: FEE, INTEREST, TRANSFER, CARD, ATM, CHECK; the
// first class with a keyword hit wins regardless of amount sign.
var typeKeywords = []struct {
	kind     model.TransactionType
	keywords []string
}{
	{model.TypeFee, []string{"frais", "commission", "agios", "fee"}},
	{model.TypeInterest, []string{"interet", "intérêt", "interets", "intérêts", "interest"}},
	{model.TypeTransfer, []string{"virement", "transfer", "wire"}},
	{model.TypeCard, []string{"carte", "card", "tpe"}},
	{model.TypeATM, []string{"retrait", "dab", "atm", "withdrawal"}},
	{model.TypeCheck, []string{"cheque", "chèque", "check"}},
}

// InferType classifies a transaction from its description, falling back
// to the amount sign: CREDIT for zero or positive, DEBIT for negative.
func InferType(description string, amount decimal.Decimal) model.TransactionType {
	lower := strings.ToLower(description)
	for _, class := range typeKeywords {
		for _, kw := range class.keywords {
			if strings.Contains(lower, kw) {
				return class.kind
			}
		}
	}
	if amount.IsNegative() {
		return model.TypeDebit
	}
	return model.TypeCredit
}
