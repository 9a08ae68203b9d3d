package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/application/ports"
	"product-catalog/domain/core/entities"
	apperrors "product-catalog/pkg/errors"
	"product-catalog/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProductKey is the partition key attribute of the products table
const ProductKey = "ProductId"

// maxScanPage bounds the page size requested from Scan
const maxScanPage = 1000

// ProductRepository implements ports.ProductRepository on a DynamoDB table
// keyed by ProductId
type ProductRepository struct {
	client    DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(client DynamoDBAPI, tableName string, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

// productItem represents the DynamoDB item structure for a product
type productItem struct {
	ProductID   string   `dynamodbav:"ProductId"`
	Name        string   `dynamodbav:"Name"`
	Description string   `dynamodbav:"Description,omitempty"`
	Price       float64  `dynamodbav:"Price"`
	Category    string   `dynamodbav:"Category"`
	Tags        []string `dynamodbav:"Tags,omitempty"`
	Stock       int      `dynamodbav:"Stock"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

func toItem(p *entities.Product) productItem {
	return productItem{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Tags:        p.Tags,
		Stock:       p.Stock,
		CreatedAt:   utils.FormatISO(p.CreatedAt),
		UpdatedAt:   utils.FormatISO(p.UpdatedAt),
	}
}

func (item productItem) toEntity() *entities.Product {
	p := &entities.Product{
		ProductID:   item.ProductID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Tags:        item.Tags,
		Stock:       item.Stock,
	}
	// Items written by other tools may carry malformed timestamps; those are
	// returned as zero times rather than failing the read.
	if t, err := utils.ParseISO(item.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := utils.ParseISO(item.UpdatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p
}

func (r *ProductRepository) key(productID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		ProductKey: &types.AttributeValueMemberS{Value: productID},
	}
}

// Save persists a product, overwriting any existing item with the same key
func (r *ProductRepository) Save(ctx context.Context, product *entities.Product) error {
	av, err := attributevalue.MarshalMap(toItem(product))
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save product to DynamoDB",
			zap.Error(err),
			zap.String("productId", product.ProductID),
		)
		return apperrors.NewDatabaseError("PutItem", err)
	}

	r.logger.Debug("Saved product to DynamoDB",
		zap.String("productId", product.ProductID),
		zap.String("table", r.tableName),
	)
	return nil
}

// GetByID retrieves a product by its ID. A missing item yields (nil, nil).
func (r *ProductRepository) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(productID),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("GetItem", err)
	}

	if len(result.Item) == 0 {
		return nil, nil
	}

	var item productItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return item.toEntity(), nil
}

// Update sets the attributes present in the patch. The write is conditional
// on the item existing so an unknown id never creates a partial item.
func (r *ProductRepository) Update(ctx context.Context, productID string, patch entities.ProductPatch) error {
	update, ok := buildUpdate(patch)
	if !ok {
		return apperrors.NewInputError(entities.ErrEmptyPatch.Error())
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name(ProductKey))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       r.key(productID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return apperrors.NewNotFoundError("product")
		}
		r.logger.Error("Failed to update product in DynamoDB",
			zap.Error(err),
			zap.String("productId", productID),
		)
		return apperrors.NewDatabaseError("UpdateItem", err)
	}
	return nil
}

// buildUpdate maps each non-nil patch field to a SET action. The attribute
// names come from this fixed list, never from client input.
func buildUpdate(patch entities.ProductPatch) (expression.UpdateBuilder, bool) {
	var update expression.UpdateBuilder
	count := 0
	set := func(name string, value interface{}) {
		update = update.Set(expression.Name(name), expression.Value(value))
		count++
	}

	if patch.Name != nil {
		set("Name", *patch.Name)
	}
	if patch.Description != nil {
		set("Description", *patch.Description)
	}
	if patch.Price != nil {
		set("Price", *patch.Price)
	}
	if patch.Category != nil {
		set("Category", *patch.Category)
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set("Tags", tags)
	}
	if patch.Stock != nil {
		set("Stock", *patch.Stock)
	}
	if count > 0 && patch.UpdatedAt != nil {
		set("UpdatedAt", utils.FormatISO(*patch.UpdatedAt))
	}

	return update, count > 0
}

// Delete removes a product. DynamoDB treats deleting a missing key as success.
func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(productID),
	})
	if err != nil {
		r.logger.Error("Failed to delete product from DynamoDB",
			zap.Error(err),
			zap.String("productId", productID),
		)
		return apperrors.NewDatabaseError("DeleteItem", err)
	}
	return nil
}

// List scans the table, skipping offset items and returning up to limit.
// Offsets follow scan order, which DynamoDB does not guarantee to be stable
// across writes.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, limit)
	if limit <= 0 {
		return products, nil
	}
	if offset < 0 {
		offset = 0
	}

	pageSize := limit + offset
	if pageSize > maxScanPage {
		pageSize = maxScanPage
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(int32(pageSize)),
	})

	skipped := 0
	for paginator.HasMorePages() && len(products) < limit {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError("Scan", err)
		}

		for _, av := range page.Items {
			if skipped < offset {
				skipped++
				continue
			}
			var item productItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal product: %w", err)
			}
			products = append(products, item.toEntity())
			if len(products) == limit {
				break
			}
		}
	}

	return products, nil
}
