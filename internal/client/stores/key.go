package stores

import "sync"

// KeyStore holds the decrypted LLM API key in memory.
type KeyStore struct {
	mu  sync.RWMutex
	key string

	subs subscribers[string]
}

func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

func (s *KeyStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

func (s *KeyStore) Set(key string) {
	s.mu.Lock()
	changed := s.key != key
	s.key = key
	s.mu.Unlock()

	if changed {
		s.subs.notify(key)
	}
}

func (s *KeyStore) Clear() {
	s.Set("")
}

// Subscribe registers fn for key changes and returns an unsubscribe func.
func (s *KeyStore) Subscribe(fn func(string)) func() {
	return s.subs.add(fn)
}
