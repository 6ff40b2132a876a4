package recovery

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTokenNotFound é retornado quando o token não existe no store
	ErrTokenNotFound = errors.New("token de recuperação não encontrado")
	// ErrTokenUsed é retornado quando o token já foi utilizado
	ErrTokenUsed = errors.New("token de recuperação já utilizado")
	// ErrTokenExpired é retornado quando o token está expirado
	ErrTokenExpired = errors.New("token de recuperação expirado")
)

// Token representa um token de recuperação de senha: valor opaco, assunto
// (email do usuário), expiração e marca de uso único.
type Token struct {
	Value     string
	Subject   string
	ExpiresAt time.Time
	Used      bool
}

// Validate verifica se o token ainda pode ser usado no instante informado
func (t Token) Validate(now time.Time) error {
	if t.Used {
		return ErrTokenUsed
	}
	if now.After(t.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// Remaining retorna quanto tempo falta para o token expirar
func (t Token) Remaining(now time.Time) time.Duration {
	if now.After(t.ExpiresAt) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// NewToken gera um token aleatório seguro para o assunto informado
func NewToken(subject string, ttl time.Duration) (Token, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, err
	}

	return Token{
		Value:     base64.RawURLEncoding.EncodeToString(buf),
		Subject:   subject,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Store define a interface do armazenamento de tokens de recuperação.
// Injetado nos controllers para que o ciclo de vida e a varredura de
// expirados sejam explícitos e testáveis.
type Store interface {
	// Save grava ou substitui um token
	Save(ctx context.Context, t Token) error

	// Find busca um token pelo valor
	Find(ctx context.Context, value string) (*Token, error)

	// MarkUsed marca um token como utilizado
	MarkUsed(ctx context.Context, value string) error

	// Sweep remove tokens expirados e retorna quantos foram removidos
	Sweep(ctx context.Context) int
}

// MemoryStore é a implementação em memória de Store
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

// NewMemoryStore cria um novo MemoryStore vazio
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]Token),
	}
}

// Save implementa Store.Save
func (s *MemoryStore) Save(_ context.Context, t Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.Value] = t
	return nil
}

// Find implementa Store.Find
func (s *MemoryStore) Find(_ context.Context, value string) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[value]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &t, nil
}

// MarkUsed implementa Store.MarkUsed
func (s *MemoryStore) MarkUsed(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[value]
	if !ok {
		return ErrTokenNotFound
	}
	t.Used = true
	s.tokens[value] = t
	return nil
}

// Sweep implementa Store.Sweep
func (s *MemoryStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for value, t := range s.tokens {
		if now.After(t.ExpiresAt) {
			delete(s.tokens, value)
			removed++
		}
	}
	return removed
}
