package common

const (
	AccountKindChecking  = "Checking"
	AccountKindSavings   = "Savings"
	AccountKindTrustFund = "TrustFund"

	TransactionTypeDeposit          = "Deposit"
	TransactionTypeWithdrawal       = "Withdrawal"
	TransactionTypeTransfer         = "Transfer"
	TransactionTypeExternalTransfer = "ExternalTransfer"
	TransactionTypeWireTransfer     = "WireTransfer"
	TransactionTypeServiceFee       = "ServiceFee"
	TransactionTypeInterest         = "Interest"

	PurposePersonalTransfer = "PersonalTransfer"
	PurposeBillPayment      = "BillPayment"
	PurposeLoanPayment      = "LoanPayment"
	PurposeInvestment       = "Investment"
	PurposeGift             = "Gift"
	PurposeBusinessPayment  = "BusinessPayment"
	PurposeOther            = "Other"

	UserTierStandard = "standard"
	UserTierPriority = "priority"

	PaymentOrderStatusCreated   = "CREATED"
	PaymentOrderStatusCompleted = "COMPLETED"

	DepositSourcePayPal = "paypal"
	DepositSourceAdmin  = "admin"
)

// AccountKinds is the fixed set every user is onboarded with, in creation order.
var AccountKinds = []string{
	AccountKindChecking,
	AccountKindSavings,
	AccountKindTrustFund,
}

var transferKinds = map[string]bool{
	TransactionTypeTransfer:         true,
	TransactionTypeExternalTransfer: true,
	TransactionTypeWireTransfer:     true,
}

var purposes = map[string]bool{
	PurposePersonalTransfer: true,
	PurposeBillPayment:      true,
	PurposeLoanPayment:      true,
	PurposeInvestment:       true,
	PurposeGift:             true,
	PurposeBusinessPayment:  true,
	PurposeOther:            true,
}

// IsTransferKind reports whether kind is a valid outbound transfer transaction type.
func IsTransferKind(kind string) bool {
	return transferKinds[kind]
}

// IsPurpose reports whether purpose is a valid transfer purpose category.
func IsPurpose(purpose string) bool {
	return purposes[purpose]
}
