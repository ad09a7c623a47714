package consts

// Mongo collection names.
const (
	ArchivedLoansCollection = "archived_loans"
)
