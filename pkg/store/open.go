package store

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMinio    = "minio"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend        string
	DataDir        string
	RedisAddr      string
	RedisPassword  string
	RedisPrefix    string
	DatabaseURL    string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Open constructs the backend named by opts.Backend (file when empty).
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(opts.DataDir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisPrefix)
	case BackendPostgres:
		if strings.TrimSpace(opts.DatabaseURL) == "" {
			return nil, fmt.Errorf("database URL required for postgres store")
		}
		return NewGormStore(opts.DatabaseURL)
	case BackendMinio:
		if strings.TrimSpace(opts.MinioEndpoint) == "" || strings.TrimSpace(opts.MinioBucket) == "" {
			return nil, fmt.Errorf("minio endpoint and bucket required for minio store")
		}
		return NewMinioStore(opts.MinioEndpoint, opts.MinioAccessKey, opts.MinioSecretKey, opts.MinioBucket, opts.MinioUseSSL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
