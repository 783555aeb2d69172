package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrPhotoNotFound is returned when no photo is stored for an employee.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoRepository stores normalised photo bytes keyed by employee ID.
type PhotoRepository interface {
	Put(ctx context.Context, employeeID string, data []byte) error
	Get(ctx context.Context, employeeID string) ([]byte, error)
	Delete(ctx context.Context, employeeID string) error
}

const photoKeyPrefix = "seatboard:photo:"

type redisPhotoRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPhotoRepository stores photos as redis strings. A zero ttl keeps them forever.
func NewRedisPhotoRepository(client *redis.Client, ttl time.Duration) PhotoRepository {
	return &redisPhotoRepository{client: client, ttl: ttl}
}

func (r *redisPhotoRepository) Put(ctx context.Context, employeeID string, data []byte) error {
	return r.client.Set(ctx, photoKeyPrefix+employeeID, data, r.ttl).Err()
}

func (r *redisPhotoRepository) Get(ctx context.Context, employeeID string) ([]byte, error) {
	data, err := r.client.Get(ctx, photoKeyPrefix+employeeID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPhotoNotFound
	}
	return data, err
}

func (r *redisPhotoRepository) Delete(ctx context.Context, employeeID string) error {
	return r.client.Del(ctx, photoKeyPrefix+employeeID).Err()
}

type memoryPhotoRepository struct {
	mu     sync.RWMutex
	photos map[string][]byte
}

// NewMemoryPhotoRepository keeps photos in process memory.
func NewMemoryPhotoRepository() PhotoRepository {
	return &memoryPhotoRepository{photos: make(map[string][]byte)}
}

func (r *memoryPhotoRepository) Put(ctx context.Context, employeeID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photos[employeeID] = append([]byte(nil), data...)
	return nil
}

func (r *memoryPhotoRepository) Get(ctx context.Context, employeeID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.photos[employeeID]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *memoryPhotoRepository) Delete(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.photos, employeeID)
	return nil
}
