package embedder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Deterministic(t *testing.T) {
	l := NewLocalProvider()
	ctx := context.Background()

	first, err := l.EmbedOne(ctx, "quarterly budget review")
	require.NoError(t, err)
	second, err := l.EmbedOne(ctx, "quarterly budget review")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := l.EmbedOne(ctx, "completely different text")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestLocalProvider_UnitLength(t *testing.T) {
	l := NewLocalProvider()
	vec, err := l.EmbedOne(context.Background(), "some words here")
	require.NoError(t, err)
	require.Len(t, vec, LocalDimension)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
}

func TestLocalProvider_SharedTokensAreCloser(t *testing.T) {
	l := NewLocalProvider()
	ctx := context.Background()

	a, err := l.EmbedOne(ctx, "invoice payment due")
	require.NoError(t, err)
	b, err := l.EmbedOne(ctx, "invoice payment overdue")
	require.NoError(t, err)
	c, err := l.EmbedOne(ctx, "mountain hiking trip")
	require.NoError(t, err)

	assert.Greater(t, dot(a, b), dot(a, c))
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func TestLocalProvider_EmptyText(t *testing.T) {
	l := NewLocalProvider()
	_, err := l.EmbedOne(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestValidateTexts(t *testing.T) {
	assert.ErrorIs(t, validateTexts(nil), ErrInvalidInput)
	assert.ErrorIs(t, validateTexts([]string{"a", "", "c"}), ErrInvalidInput)

	tooMany := make([]string, MaxBatchTexts+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("t%d", i)
	}
	assert.ErrorIs(t, validateTexts(tooMany), ErrBatchTooLarge)

	atLimit := tooMany[:MaxBatchTexts]
	assert.NoError(t, validateTexts(atLimit))
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	result, err := retryWithBackoff(context.Background(), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	attempts := 0
	_, err := retryWithBackoff(context.Background(), func() (int, error) {
		attempts++
		return 0, errors.New("permanent")
	})
	assert.Error(t, err)
	assert.Equal(t, MaxRetries, attempts)
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := retryWithBackoff(ctx, func() (int, error) {
		attempts++
		cancel()
		return 0, errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "mystery"})
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestNewFromEnv_FallsBackToLocal(t *testing.T) {
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvOpenAIAPIKey, "")

	emb, err := NewFromEnv()
	require.NoError(t, err)
	defer emb.Close()
	assert.Equal(t, ProviderLocal, emb.Provider())
}

func TestNewFromEnv_ExplicitProviderWins(t *testing.T) {
	t.Setenv(EnvProvider, ProviderLocal)
	t.Setenv(EnvGeminiAPIKey, "some-key")

	emb, err := NewFromEnv()
	require.NoError(t, err)
	defer emb.Close()
	assert.Equal(t, ProviderLocal, emb.Provider())
}
