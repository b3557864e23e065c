package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup; index creation is idempotent on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewClientUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("client users indexes: %w", err)
	}
	if err := NewClientRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("clients indexes: %w", err)
	}
	if err := NewEstimateRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("estimates indexes: %w", err)
	}
	if err := NewDocumentRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("documents indexes: %w", err)
	}
	return nil
}
