package audit

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type AuditMongoRepository struct {
	Collection collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName, collectionName string) contracts.AuditRecorder {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(collectionName),
	}
}

func (repo *AuditMongoRepository) Record(ctx context.Context, record models.AuditRecord) error {
	_, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
