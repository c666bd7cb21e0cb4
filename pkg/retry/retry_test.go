package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/insta-media-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(retries uint64) Config {
	return Config{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Nop(), "ping", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	}, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Nop(), "ping", func(context.Context) error {
		calls++
		return errors.New("down")
	}, fastConfig(2))

	require.EqualError(t, err, "down")
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanent(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Nop(), "ping", func(context.Context) error {
		calls++
		return Permanent(errors.New("bad password"))
	}, fastConfig(5))

	require.EqualError(t, err, "bad password")
	assert.Equal(t, 1, calls)
}
