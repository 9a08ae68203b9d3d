package di

import (
	"context"
	"strings"

	"product-catalog/application/ports"
	"product-catalog/application/services"
	"product-catalog/infrastructure/config"
	"product-catalog/infrastructure/persistence/dynamodb"
	"product-catalog/infrastructure/persistence/memory"
	"product-catalog/interfaces/http/rest"
	"product-catalog/interfaces/http/rest/middleware"
	"product-catalog/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName names the service in traces and HTTP metrics
const ServiceName = "product-catalog"

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCloudWatchClient,
	ProvideProductRepository,
	ProvideTaxonomyRepository,
	ProvideMetrics,
	ProvideTracer,
	ProvideProductService,
	ProvideHTTPMetrics,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// ProvideLogger creates a new logger instance. Production uses the JSON
// encoder; an unparsable LOG_LEVEL falls back to info.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", ServiceName)), nil
}

// ProvideAWSConfig creates AWS configuration. With tracing enabled every SDK
// call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideProductRepository creates the product repository for the
// configured storage backend
func ProvideProductRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.ProductRepository {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory product storage")
		return memory.NewInMemoryProductStore()
	}
	return dynamodb.NewProductRepository(client, cfg.ProductsTable, logger)
}

// ProvideTaxonomyRepository creates the taxonomy repository. The memory
// backend is seeded from TAXONOMY_SEED.
func ProvideTaxonomyRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.TaxonomyRepository {
	if cfg.StorageBackend == config.StorageMemory {
		seed := cfg.TaxonomySeedIDs()
		logger.Warn("Using in-memory taxonomy storage", zap.Strings("seed", seed))
		return memory.NewInMemoryTaxonomyStore(seed...)
	}
	return dynamodb.NewTaxonomyRepository(client, cfg.TaxonomyTable, logger)
}

// ProvideMetrics creates the CloudWatch operation metrics, or nil when
// metrics are disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideTracer creates the service tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing)
}

// ProvideProductService creates the product service
func ProvideProductService(
	products ports.ProductRepository,
	taxonomy ports.TaxonomyRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ProductService {
	return services.NewProductService(products, taxonomy, logger,
		services.WithMetrics(metrics),
		services.WithTracer(tracer),
		services.WithUpdatedAtRefresh(cfg.RefreshUpdatedAt),
	)
}

// ProvideHTTPMetrics creates the Prometheus request metrics
func ProvideHTTPMetrics() *middleware.HTTPMetrics {
	return middleware.NewHTTPMetrics(strings.ReplaceAll(ServiceName, "-", "_"))
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	service *services.ProductService,
	httpMetrics *middleware.HTTPMetrics,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(service, httpMetrics, logger)
}
