package recovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIsRandomAndBound(t *testing.T) {
	a, err := NewToken("ana@example.com", 30*time.Minute)
	require.NoError(t, err)
	b, err := NewToken("ana@example.com", 30*time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, a.Value, b.Value)
	assert.Equal(t, "ana@example.com", a.Subject)
	assert.False(t, a.Used)
	assert.True(t, a.ExpiresAt.After(time.Now()))
}

func TestTokenValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   Token
		wantErr error
	}{
		{
			name:    "token válido",
			token:   Token{Value: "t", ExpiresAt: now.Add(time.Minute)},
			wantErr: nil,
		},
		{
			name:    "token usado",
			token:   Token{Value: "t", ExpiresAt: now.Add(time.Minute), Used: true},
			wantErr: ErrTokenUsed,
		},
		{
			name:    "token expirado",
			token:   Token{Value: "t", ExpiresAt: now.Add(-time.Minute)},
			wantErr: ErrTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.token.Validate(now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenRemaining(t *testing.T) {
	now := time.Now()

	tok := Token{ExpiresAt: now.Add(10 * time.Minute)}
	assert.Equal(t, 10*time.Minute, tok.Remaining(now))

	expired := Token{ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, time.Duration(0), expired.Remaining(now))
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	tok, err := NewToken("ana@example.com", 30*time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, tok))

	found, err := store.Find(ctx, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, tok.Subject, found.Subject)
	assert.False(t, found.Used)

	// uso único: depois de marcado, a validação falha
	require.NoError(t, store.MarkUsed(ctx, tok.Value))
	found, err = store.Find(ctx, tok.Value)
	require.NoError(t, err)
	assert.ErrorIs(t, found.Validate(time.Now()), ErrTokenUsed)
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Find(ctx, "inexistente")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.ErrorIs(t, store.MarkUsed(ctx, "inexistente"), ErrTokenNotFound)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	expired := Token{Value: "velho", Subject: "a@example.com", ExpiresAt: time.Now().Add(-time.Minute)}
	valid := Token{Value: "novo", Subject: "b@example.com", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, expired))
	require.NoError(t, store.Save(ctx, valid))

	assert.Equal(t, 1, store.Sweep(ctx))

	_, err := store.Find(ctx, "velho")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = store.Find(ctx, "novo")
	assert.NoError(t, err)
}
