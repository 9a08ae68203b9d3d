package dynamodb

import (
	"context"
	"errors"
	"testing"

	apperrors "product-catalog/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTaxonomyRepository_Exists(t *testing.T) {
	table := newFakeTable(TaxonomyKey)
	table.put(map[string]types.AttributeValue{
		TaxonomyKey: &types.AttributeValueMemberS{Value: "cat-1"},
		"Label":     &types.AttributeValueMemberS{Value: "Kitchen"},
	})
	repo := NewTaxonomyRepository(table, "ProductTaxonomyAttributes", zap.NewNop())
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "cat-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "cat-9")
	require.NoError(t, err)
	assert.False(t, exists)

	require.Len(t, table.gets, 2)
	input := table.gets[0]
	assert.Equal(t, "ProductTaxonomyAttributes", aws.ToString(input.TableName))
	assert.NotEmpty(t, aws.ToString(input.ProjectionExpression))
	for _, name := range input.ExpressionAttributeNames {
		assert.Equal(t, TaxonomyKey, name)
	}
}

func TestTaxonomyRepository_EmptyIDSkipsLookup(t *testing.T) {
	table := newFakeTable(TaxonomyKey)
	repo := NewTaxonomyRepository(table, "ProductTaxonomyAttributes", zap.NewNop())

	exists, err := repo.Exists(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, table.gets)
}

func TestTaxonomyRepository_StorageFailure(t *testing.T) {
	table := newFakeTable(TaxonomyKey)
	table.err = errors.New("throttled")
	repo := NewTaxonomyRepository(table, "ProductTaxonomyAttributes", zap.NewNop())

	exists, err := repo.Exists(context.Background(), "cat-1")
	require.Error(t, err)
	assert.False(t, exists)
	assert.True(t, apperrors.IsDatabase(err))
}
