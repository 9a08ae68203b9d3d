package observability

import (
	"context"
	"time"

	apperrors "product-catalog/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client used for metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes product operation metrics to CloudWatch.
// All methods are no-ops on a nil receiver.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// Outcome classifies an operation result for the Outcome dimension
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsValidation(err), apperrors.IsInput(err):
		return "rejected"
	case apperrors.IsNotFound(err):
		return "not_found"
	default:
		return "failure"
	}
}

// RecordOperation records the latency and count of a product operation.
// Publishing failures are logged and never returned to the caller.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}

	now := time.Now()
	dimensions := []types.Dimension{
		{
			Name:  aws.String("Operation"),
			Value: aws.String(operation),
		},
		{
			Name:  aws.String("Outcome"),
			Value: aws.String(Outcome(err)),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("OperationLatency"),
				Dimensions: dimensions,
				Value:      aws.Float64(float64(duration.Milliseconds())),
				Unit:       types.StandardUnitMilliseconds,
				Timestamp:  aws.Time(now),
			},
			{
				MetricName: aws.String("OperationCount"),
				Dimensions: dimensions,
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(now),
			},
		},
	}

	if _, putErr := m.client.PutMetricData(ctx, input); putErr != nil && m.logger != nil {
		m.logger.Warn("Failed to send metrics",
			zap.String("operation", operation),
			zap.Error(putErr),
		)
	}
}
