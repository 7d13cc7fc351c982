package session

import "context"

// StoreSource adapts a Store into the token source the API client reads on
// every request. The request context is passed through to the store load, so
// a redis-backed session read respects the caller's cancellation and
// deadline. A missing or unreadable session yields an empty token and the
// request goes out unauthenticated.
type StoreSource struct {
	store Store
}

func NewStoreSource(store Store) *StoreSource {
	return &StoreSource{store: store}
}

func (s *StoreSource) BearerToken(ctx context.Context) string {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return ""
	}
	return sess.Token
}
