package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	storemodels "credverify/internal/pkg/store/models"
)

type ArchivedLoansStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.ArchivedLoan, error)
	Find(ctx context.Context, filter interface{}) ([]storemodels.ArchivedLoan, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}
