package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"crm-backend/internal/config"
)

var client *redis.Client

// Init connects the cache client. Redis is optional: with no address
// configured every helper becomes a no-op and callers hit the database.
func Init(cfg *config.Config) {
	if cfg.Redis.Addr == "" {
		log.Println("[Cache] Redis not configured, caching disabled")
		return
	}

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] Redis unreachable (%v), caching disabled", err)
		client = nil
		return
	}

	log.Printf("[Cache] Connected to Redis at %s", cfg.Redis.Addr)
}

// Close shuts down the cache connection
func Close() {
	if client != nil {
		client.Close()
	}
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// TenantKey scopes a cache key to one company
func TenantKey(companyID int, parts string) string {
	return fmt.Sprintf("company:%d:%s", companyID, parts)
}

// InvalidateClientCaches clears client lists for a company.
// Called when: CreateClient, UpdateClient, DeleteClient
func InvalidateClientCaches(ctx context.Context, companyID int) {
	InvalidatePattern(ctx, TenantKey(companyID, "clients:*"))
}

// InvalidatePackageCaches clears package lists for a company.
// Called when: CreatePackage, UpdatePackage, DeactivatePackage
func InvalidatePackageCaches(ctx context.Context, companyID int) {
	InvalidatePattern(ctx, TenantKey(companyID, "packages:*"))
}

// InvalidateQuotationCaches clears quotation lists for a company.
// Called when: CreateQuotation, UpdateQuotation, DeleteQuotation and
// any bill mutation (bills change quotation status)
func InvalidateQuotationCaches(ctx context.Context, companyID int) {
	InvalidatePattern(ctx, TenantKey(companyID, "quotations:*"))
}

// InvalidateBillCaches clears bill lists for a company.
// Called when: CreateBill, UpdateBill, DeleteBill and any receipt
// mutation (reconciliation rewrites bill state)
func InvalidateBillCaches(ctx context.Context, companyID int) {
	InvalidatePattern(ctx, TenantKey(companyID, "bills:*"))
}

// InvalidateReceiptCaches clears receipt lists for a company.
// Called when: CreateReceipt, UpdateReceipt, DeleteReceipt
func InvalidateReceiptCaches(ctx context.Context, companyID int) {
	InvalidatePattern(ctx, TenantKey(companyID, "receipts:*"))
}
