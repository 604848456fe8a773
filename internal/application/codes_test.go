package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/infrastructure/memory"
)

func newCodeManager(policy CodePolicy) *VerificationCodeManager {
	return NewVerificationCodeManager(memory.NewVerificationCodeRepository(), nil, policy, nil)
}

func TestIssueAndConsume(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	ctx := context.Background()

	h, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
	assert.Len(t, h.Code, 6)
	assert.Equal(t, entity.ChannelEmail, h.Channel)
	assert.True(t, h.ExpiresAt.After(time.Now()))

	require.NoError(t, m.Consume(ctx, "u1", entity.ChannelEmail, h.Code))

	// A consumed code cannot be consumed twice.
	assert.ErrorIs(t, m.Consume(ctx, "u1", entity.ChannelEmail, h.Code), ErrCodeInvalid)
}

func TestConsumeWrongCode(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	ctx := context.Background()

	h, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Consume(ctx, "u1", entity.ChannelEmail, "000000"), ErrCodeInvalid)
	assert.ErrorIs(t, m.Consume(ctx, "u1", entity.ChannelEmail, ""), ErrCodeInvalid)

	// The wrong attempts must not burn the real code.
	require.NoError(t, m.Consume(ctx, "u1", entity.ChannelEmail, h.Code))
}

func TestConsumeNoActiveCode(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	assert.ErrorIs(t, m.Consume(context.Background(), "u1", entity.ChannelEmail, "123456"), ErrCodeInvalid)
}

func TestIssueSupersedesPrior(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	ctx := context.Background()

	first, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
	second, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)

	// Only the newest code is live, even though the first has not expired.
	assert.ErrorIs(t, m.Consume(ctx, "u1", entity.ChannelEmail, first.Code), ErrCodeInvalid)
	require.NoError(t, m.Consume(ctx, "u1", entity.ChannelEmail, second.Code))
}

func TestChannelsAreIndependent(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	ctx := context.Background()

	email, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
	sms, err := m.Issue(ctx, "u1", entity.ChannelSMS)
	require.NoError(t, err)

	require.NoError(t, m.Consume(ctx, "u1", entity.ChannelSMS, sms.Code))
	require.NoError(t, m.Consume(ctx, "u1", entity.ChannelEmail, email.Code))
}

func TestConsumeExpiredCode(t *testing.T) {
	m := newCodeManager(CodePolicy{TTL: time.Nanosecond})
	ctx := context.Background()

	h, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	assert.ErrorIs(t, m.Consume(ctx, "u1", entity.ChannelEmail, h.Code), ErrCodeExpired)
}

func TestIssueRejectsUnknownChannel(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	_, err := m.Issue(context.Background(), "u1", entity.Channel("carrier-pigeon"))
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func newRateLimitedManager(t *testing.T, policy CodePolicy) (*VerificationCodeManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewVerificationCodeManager(memory.NewVerificationCodeRepository(), rdb, policy, nil), mr
}

func TestIssueRateLimited(t *testing.T) {
	m, _ := newRateLimitedManager(t, CodePolicy{RateMax: 3, RateWindow: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.Issue(ctx, "u1", entity.ChannelEmail)
		require.NoError(t, err)
	}
	_, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	assert.ErrorIs(t, err, ErrRateLimited)

	// The window is scoped per (user, channel).
	_, err = m.Issue(ctx, "u1", entity.ChannelSMS)
	require.NoError(t, err)
	_, err = m.Issue(ctx, "u2", entity.ChannelEmail)
	require.NoError(t, err)
}

func TestIssueRateLimitWindowExpires(t *testing.T) {
	m, mr := newRateLimitedManager(t, CodePolicy{RateMax: 1, RateWindow: time.Minute})
	ctx := context.Background()

	_, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
	_, err = m.Issue(ctx, "u1", entity.ChannelEmail)
	assert.ErrorIs(t, err, ErrRateLimited)

	mr.FastForward(time.Minute + time.Second)

	_, err = m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)
}

func TestIssueRateLimitFailsOpen(t *testing.T) {
	m, mr := newRateLimitedManager(t, CodePolicy{RateMax: 1, RateWindow: time.Minute})
	mr.Close()

	_, err := m.Issue(context.Background(), "u1", entity.ChannelEmail)
	require.NoError(t, err, "issuing must not depend on redis availability")
}

func TestConcurrentConsumeSingleWinner(t *testing.T) {
	m := newCodeManager(CodePolicy{})
	ctx := context.Background()

	h, err := m.Issue(ctx, "u1", entity.ChannelEmail)
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Consume(ctx, "u1", entity.ChannelEmail, h.Code)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, ErrCodeAlreadyUsed) || errors.Is(err, ErrCodeInvalid),
				"unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent submission must win")
}
