package port

import "context"

//go:generate mockgen -source=cache.go -destination=mock/cache.go -package=mock
type CacheService interface {
	Remove(ctx context.Context, key string) error
	RemoveByPattern(ctx context.Context, pattern string) error
	Flush(ctx context.Context) error
}
