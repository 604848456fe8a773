package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	repo "github.com/mo7amed4522/user-services/internal/domain/repository"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

// CodePolicy controls issuance of verification codes.
type CodePolicy struct {
	Length     int           // digits per code
	TTL        time.Duration // validity window
	RateWindow time.Duration // sliding rate-limit window per (user, channel)
	RateMax    int           // max issues inside the window
}

func (p CodePolicy) withDefaults() CodePolicy {
	if p.Length <= 0 {
		p.Length = 6
	}
	if p.TTL <= 0 {
		p.TTL = 10 * time.Minute
	}
	if p.RateWindow <= 0 {
		p.RateWindow = time.Hour
	}
	if p.RateMax <= 0 {
		p.RateMax = 5
	}
	return p
}

// CodeHandle is what a caller needs to deliver a freshly issued code
// out-of-band. The core never performs delivery itself; the plaintext Code
// exists only here and is never persisted.
type CodeHandle struct {
	UserID    string
	Channel   entity.Channel
	Code      string
	ExpiresAt time.Time
}

// VerificationCodeManager issues and consumes single-use codes scoped to a
// (user, channel) pair. Issuing supersedes any prior unused code for the
// pair; consumption is a storage-level conditional update so exactly one of
// N concurrent submissions wins.
type VerificationCodeManager struct {
	codes  repo.VerificationCodeRepository
	rdb    *redis.Client
	policy CodePolicy
	logger *logrus.Logger
}

func NewVerificationCodeManager(codes repo.VerificationCodeRepository, rdb *redis.Client, policy CodePolicy, logger *logrus.Logger) *VerificationCodeManager {
	return &VerificationCodeManager{
		codes:  codes,
		rdb:    rdb,
		policy: policy.withDefaults(),
		logger: logger,
	}
}

// Atomic INCR + set PEXPIRE when the key is new.
var codeRateScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func codeRateKey(userID string, channel entity.Channel) string {
	return "vc:rl:" + userID + ":" + string(channel)
}

// allowIssue enforces the sliding-window issuance limit. Fails open when
// redis is unreachable so code delivery is not tied to cache availability.
func (m *VerificationCodeManager) allowIssue(ctx context.Context, userID string, channel entity.Channel) bool {
	if m.rdb == nil {
		return true
	}
	n, err := codeRateScript.Run(ctx, m.rdb, []string{codeRateKey(userID, channel)}, m.policy.RateWindow.Milliseconds()).Int()
	if err != nil {
		if m.logger != nil {
			m.logger.WithError(err).Warn("code rate limit check failed, allowing")
		}
		return true
	}
	return n <= m.policy.RateMax
}

// Issue generates a fresh numeric code for the pair, stores only its hash,
// invalidates any prior unused code, and returns the handle the caller
// delivers out-of-band. Returns ErrRateLimited when the window is exhausted.
func (m *VerificationCodeManager) Issue(ctx context.Context, userID string, channel entity.Channel) (*CodeHandle, error) {
	if !channel.Valid() {
		return nil, ErrCodeInvalid
	}
	if !m.allowIssue(ctx, userID, channel) {
		return nil, ErrRateLimited
	}

	plain, err := helpers.GenNumericCode(m.policy.Length)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	code := &entity.VerificationCode{
		ID:        uuid.NewString(),
		UserID:    userID,
		Channel:   channel,
		CodeHash:  helpers.HashSecret(plain),
		ExpiresAt: now.Add(m.policy.TTL),
		Used:      false,
		CreatedAt: now,
	}
	if err := m.codes.Replace(ctx, code); err != nil {
		return nil, storageErr(err)
	}
	return &CodeHandle{
		UserID:    userID,
		Channel:   channel,
		Code:      plain,
		ExpiresAt: code.ExpiresAt,
	}, nil
}

// Consume validates a submitted code against the single active code for the
// pair and atomically marks it used.
//
// Outcomes: a wrong or superseded code is ErrCodeInvalid; a matching but
// stale code is ErrCodeExpired; losing the mark-used race is
// ErrCodeAlreadyUsed. Exactly one of N concurrent submissions of the correct
// value succeeds.
func (m *VerificationCodeManager) Consume(ctx context.Context, userID string, channel entity.Channel, submitted string) error {
	if !channel.Valid() || submitted == "" {
		return ErrCodeInvalid
	}
	active, err := m.codes.FindActive(ctx, userID, channel)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCodeInvalid
		}
		return storageErr(err)
	}
	if !helpers.SecretEqual(active.CodeHash, submitted) {
		return ErrCodeInvalid
	}
	if active.Expired(time.Now().UTC()) {
		return ErrCodeExpired
	}
	won, err := m.codes.MarkUsed(ctx, active.ID)
	if err != nil {
		return storageErr(err)
	}
	if !won {
		return ErrCodeAlreadyUsed
	}
	return nil
}
