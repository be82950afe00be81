package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/domain"
)

type mongoRepository struct {
	messages *mongo.Collection
	details  *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		messages: db.Collection("contacts"),
		details:  db.Collection("details"),
	}
}

func (m *mongoRepository) SaveMessage(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now()

	if _, err := m.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	return nil
}

func (m *mongoRepository) SaveDetails(ctx context.Context, details *domain.BillingDetails) error {
	details.CreatedAt = time.Now()

	if _, err := m.details.InsertOne(ctx, details); err != nil {
		return fmt.Errorf("failed to insert checkout details: %w", err)
	}

	return nil
}
