package archived_loans

import (
	"context"
	"log/slog"

	"credverify/internal/pkg/consts"
	mongodb "credverify/internal/pkg/db/mongo"
	"credverify/internal/pkg/logger"
	storemodels "credverify/internal/pkg/store/models"
	"credverify/internal/pkg/store/repository"
	"credverify/internal/service/interfaces"
)

// ArchivedLoansRepository exports loans that reached a terminal state into
// Mongo for downstream reporting.
type ArchivedLoansRepository struct {
	repo interfaces.ArchivedLoansStoreInterface
}

func NewArchivedLoansRepository(client *mongodb.MongoClient) *ArchivedLoansRepository {
	collection := client.Database.Collection(consts.ArchivedLoansCollection)
	repo := repository.NewMongoRepository[storemodels.ArchivedLoan](collection)
	return &ArchivedLoansRepository{repo: repo}
}

func NewArchivedLoansRepositoryWithInterface(repo interfaces.ArchivedLoansStoreInterface) *ArchivedLoansRepository {
	return &ArchivedLoansRepository{repo: repo}
}

func (r *ArchivedLoansRepository) ArchiveLoan(ctx context.Context, entry storemodels.ArchivedLoan) error {
	result, err := r.repo.Create(ctx, entry)
	if err != nil {
		logger.CtxError(ctx, "Failed to create archived loan document", err,
			slog.Uint64("loan_id", entry.LoanID))
		return err
	}
	logger.CtxInfo(ctx, "Archived terminal loan",
		slog.Uint64("loan_id", entry.LoanID),
		slog.String("final_status", entry.FinalStatus),
		slog.Any("archive_id", result.InsertedID))
	return nil
}
