package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"aster-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`

	// NASA Exoplanet Archive (TAP) and lightcurve services
	ArchiveTAPURL           string        `env:"ARCHIVE_TAP_URL" env-default:"https://exoplanetarchive.ipac.caltech.edu/TAP/sync"`
	TESSCutURL              string        `env:"TESSCUT_URL" env-default:"https://mast.stsci.edu/tesscut/api/v0.1"`
	LightcurveURL           string        `env:"LIGHTCURVE_URL" env-default:"https://mast.stsci.edu/lightcurves/api/v0.1"`
	ArchiveTimeout          time.Duration `env:"ARCHIVE_TIMEOUT" env-default:"30s"`
	LightcurveTimeout       time.Duration `env:"LIGHTCURVE_TIMEOUT" env-default:"90s"`
	ArchiveMaxResponseBytes int64         `env:"ARCHIVE_MAX_RESPONSE_BYTES" env-default:"10485760"` // 10MB

	// Model scoring service
	ModelServiceURL     string        `env:"MODEL_SERVICE_URL" env-default:""`
	ModelServiceTimeout time.Duration `env:"MODEL_SERVICE_TIMEOUT" env-default:"15s"`

	// Decision thresholds are tunable per deployment; defaults come from the
	// calibration runs that shipped with the current models.
	TESSThreshold   float64 `env:"TESS_DECISION_THRESHOLD" env-default:"0.4"`
	KeplerThreshold float64 `env:"KEPLER_DECISION_THRESHOLD" env-default:"0.4"`
	K2Threshold     float64 `env:"K2_DECISION_THRESHOLD" env-default:"0.6"`

	// Result cache TTLs
	PredictionCacheTTL time.Duration `env:"PREDICTION_CACHE_TTL" env-default:"1h"`
	FeaturesCacheTTL   time.Duration `env:"FEATURES_CACHE_TTL" env-default:"6h"`
	LightcurveCacheTTL time.Duration `env:"LIGHTCURVE_CACHE_TTL" env-default:"24h"`

	// Kafka Producer (resolution/prediction events)
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"target-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`
}
