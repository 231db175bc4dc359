package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Directory is a read-through cache over the device and merchant
// directory. On any Redis error it falls back to the store, so a cache
// outage degrades to extra load rather than failed orders.
type Directory struct {
	repo   port.Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDirectory(repo port.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Directory {
	return &Directory{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func deviceKey(deviceID uint64) string {
	return "dir:device:" + strconv.FormatUint(deviceID, 10)
}

func merchantKey(merchantID uint64) string {
	return "dir:merchant:" + strconv.FormatUint(merchantID, 10)
}

func (d *Directory) ReadDevice(ctx context.Context, deviceID uint64) (*domain.Device, error) {
	key := deviceKey(deviceID)
	if cached, err := d.client.Get(ctx, key).Bytes(); err == nil {
		device := domain.Device{}
		if err := json.Unmarshal(cached, &device); err == nil {
			return &device, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		d.logger.Warn("directory cache read failed", zap.String("key", key), zap.Error(err))
	}

	device, err := d.repo.ReadDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	d.store(ctx, key, device)
	return device, nil
}

func (d *Directory) ReadMerchant(ctx context.Context, merchantID uint64) (*domain.Merchant, error) {
	key := merchantKey(merchantID)
	if cached, err := d.client.Get(ctx, key).Bytes(); err == nil {
		merchant := domain.Merchant{}
		if err := json.Unmarshal(cached, &merchant); err == nil {
			return &merchant, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		d.logger.Warn("directory cache read failed", zap.String("key", key), zap.Error(err))
	}

	merchant, err := d.repo.ReadMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	d.store(ctx, key, merchant)
	return merchant, nil
}

func (d *Directory) InvalidateDevice(ctx context.Context, deviceID uint64) error {
	if err := d.client.Del(ctx, deviceKey(deviceID)).Err(); err != nil {
		d.logger.Warn("directory cache invalidate failed",
			zap.Uint64("device_id", deviceID), zap.Error(err))
		return err
	}
	return nil
}

func (d *Directory) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := d.client.Set(ctx, key, raw, d.ttl).Err(); err != nil {
		d.logger.Warn("directory cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// RepoDirectory serves directory reads straight from the store. Used
// when no Redis address is configured.
type RepoDirectory struct {
	repo port.Repository
}

func NewRepoDirectory(repo port.Repository) *RepoDirectory {
	return &RepoDirectory{repo: repo}
}

func (d *RepoDirectory) ReadDevice(ctx context.Context, deviceID uint64) (*domain.Device, error) {
	return d.repo.ReadDevice(ctx, deviceID)
}

func (d *RepoDirectory) ReadMerchant(ctx context.Context, merchantID uint64) (*domain.Merchant, error) {
	return d.repo.ReadMerchant(ctx, merchantID)
}

func (d *RepoDirectory) InvalidateDevice(ctx context.Context, deviceID uint64) error {
	return nil
}
