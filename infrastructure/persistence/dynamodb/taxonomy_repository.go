package dynamodb

import (
	"context"
	"fmt"

	"product-catalog/application/ports"
	apperrors "product-catalog/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TaxonomyKey is the partition key attribute of the taxonomy table
const TaxonomyKey = "TaxonomyId"

// TaxonomyRepository checks taxonomy entries by key. Only the key attribute
// is projected since existence is all that matters.
type TaxonomyRepository struct {
	client    DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

// NewTaxonomyRepository creates a new TaxonomyRepository
func NewTaxonomyRepository(client DynamoDBAPI, tableName string, logger *zap.Logger) *TaxonomyRepository {
	return &TaxonomyRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.TaxonomyRepository = (*TaxonomyRepository)(nil)

// Exists reports whether an item keyed by taxonomyID is present
func (r *TaxonomyRepository) Exists(ctx context.Context, taxonomyID string) (bool, error) {
	if taxonomyID == "" {
		// DynamoDB rejects empty key values
		return false, nil
	}

	expr, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(TaxonomyKey))).
		Build()
	if err != nil {
		return false, fmt.Errorf("failed to build projection: %w", err)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			TaxonomyKey: &types.AttributeValueMemberS{Value: taxonomyID},
		},
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		r.logger.Error("Failed to look up taxonomy entry",
			zap.Error(err),
			zap.String("taxonomyId", taxonomyID),
		)
		return false, apperrors.NewDatabaseError("GetItem", err)
	}

	return len(result.Item) > 0, nil
}
