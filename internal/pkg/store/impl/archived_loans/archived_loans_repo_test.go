package archived_loans

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	storemodels "credverify/internal/pkg/store/models"
)

type MockArchivedLoansStore struct {
	mock.Mock
}

func (m *MockArchivedLoansStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *MockArchivedLoansStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.ArchivedLoan, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(storemodels.ArchivedLoan), args.Error(1)
}

func (m *MockArchivedLoansStore) Find(ctx context.Context, filter interface{}) ([]storemodels.ArchivedLoan, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]storemodels.ArchivedLoan), args.Error(1)
}

func (m *MockArchivedLoansStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestArchiveLoanCreatesDocument(t *testing.T) {
	store := &MockArchivedLoansStore{}
	repo := NewArchivedLoansRepositoryWithInterface(store)

	entry := storemodels.ArchivedLoan{
		GUID:        "guid-1",
		LoanID:      42,
		Borrower:    "alice",
		FinalStatus: "PaidInFull",
	}
	store.On("Create", mock.Anything, entry).Return(&mongo.InsertOneResult{InsertedID: "doc-1"}, nil)

	require.NoError(t, repo.ArchiveLoan(context.Background(), entry))
	store.AssertExpectations(t)
}

func TestArchiveLoanPropagatesWriteError(t *testing.T) {
	store := &MockArchivedLoansStore{}
	repo := NewArchivedLoansRepositoryWithInterface(store)

	store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("write concern failed"))

	err := repo.ArchiveLoan(context.Background(), storemodels.ArchivedLoan{LoanID: 42})
	assert.Error(t, err)
}
