package auth

import (
	"context"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/providers"
	"sync"
	"time"
)

const registryKeyPrefix = "token:"

// registry remembers which token ids are live; a token whose id is missing
// fails verification even when its signature and expiry are valid.
type registry interface {
	register(ctx context.Context, jti, subject string, ttl time.Duration) error
	lookup(ctx context.Context, jti string) (bool, error)
	remove(ctx context.Context, jti string) error
}

type tokenService struct {
	secret   []byte
	ttl      time.Duration
	registry registry
	logger   *zap.Logger
	clock    func() time.Time
}

// NewTokenService issues HS256 bearer tokens. Issued ids are tracked in Redis
// when a client is supplied, in process memory otherwise.
func NewTokenService(secret string, ttl time.Duration, redis providers.RedisProvider, logger *zap.Logger) providers.TokenProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if secret == "" {
		logger.Warn("SECRET_KEY is empty, tokens will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}
	svc := &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		clock:  time.Now,
	}
	if redis != nil {
		svc.registry = &redisRegistry{client: redis}
	} else {
		svc.registry = &memoryRegistry{clock: svc.now, ids: make(map[string]time.Time)}
	}
	return svc
}

func (j *tokenService) now() time.Time { return j.clock() }

func (j *tokenService) Issue(ctx context.Context, identity string) (string, time.Duration, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to sign token")
	}
	if err := j.registry.register(ctx, claims.ID, identity, j.ttl); err != nil {
		return "", 0, errors.Wrap(err, "failed to register token")
	}
	return token, j.ttl, nil
}

func (j *tokenService) parse(tokenStr string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (j *tokenService) Verify(ctx context.Context, tokenStr string) (string, bool) {
	if tokenStr == "" {
		return "", false
	}
	claims, err := j.parse(tokenStr, jwt.WithExpirationRequired())
	if err != nil {
		return "", false
	}
	live, err := j.registry.lookup(ctx, claims.ID)
	if err != nil {
		j.logger.Error("failed to look up token", zap.String("jti", claims.ID), zap.Error(err))
		return "", false
	}
	if !live {
		return "", false
	}
	return claims.Subject, true
}

// Revoke forgets the token id. Expired tokens are accepted so a client can
// always log out.
func (j *tokenService) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := j.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		return err
	}
	return j.registry.remove(ctx, claims.ID)
}

type redisRegistry struct {
	client providers.RedisProvider
}

func (r *redisRegistry) register(ctx context.Context, jti, subject string, ttl time.Duration) error {
	return r.client.Set(ctx, registryKeyPrefix+jti, subject, ttl)
}

func (r *redisRegistry) lookup(ctx context.Context, jti string) (bool, error) {
	_, err := r.client.Get(ctx, registryKeyPrefix+jti)
	if errors.Is(err, providers.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisRegistry) remove(ctx context.Context, jti string) error {
	return r.client.Del(ctx, registryKeyPrefix+jti)
}

type memoryRegistry struct {
	mu    sync.Mutex
	clock func() time.Time
	ids   map[string]time.Time
}

func (m *memoryRegistry) register(_ context.Context, jti, _ string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock()
	for id, expiresAt := range m.ids {
		if !expiresAt.After(now) {
			delete(m.ids, id)
		}
	}
	m.ids[jti] = now.Add(ttl)
	return nil
}

func (m *memoryRegistry) lookup(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiresAt, ok := m.ids[jti]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(m.clock()) {
		delete(m.ids, jti)
		return false, nil
	}
	return true, nil
}

func (m *memoryRegistry) remove(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, jti)
	return nil
}
