package kv

import "context"

const DefaultClientID = "anonymous"

// ClientKey namespaces key under a client identifier.
func ClientKey(clientID, key string) string {
	if clientID == "" {
		clientID = DefaultClientID
	}
	return "client:" + clientID + ":" + key
}

type scoped struct {
	repo     Repository
	clientID string
}

// Scope returns a view of repo in which every key belongs to clientID.
func Scope(repo Repository, clientID string) Repository {
	return &scoped{repo: repo, clientID: clientID}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.repo.Get(ctx, ClientKey(s.clientID, key))
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.repo.Set(ctx, ClientKey(s.clientID, key), value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, ClientKey(s.clientID, key))
}

func (s *scoped) Watch(key string, fn func(key string)) func() {
	return s.repo.Watch(ClientKey(s.clientID, key), func(string) { fn(key) })
}
