package state

// TokenSource reads the bearer token straight from the snapshot file on
// every call. The REST client uses this durable read path instead of the
// in-memory store so that a freshly started process picks up a token
// written by another one sharing the same snapshot file.
type TokenSource struct {
	store *SnapshotStore
}

// NewTokenSource creates a TokenSource over the given snapshot store.
func NewTokenSource(store *SnapshotStore) *TokenSource {
	return &TokenSource{store: store}
}

// Token returns the persisted bearer token, or "" when there is no
// usable snapshot. Absence of a token is not an error at this layer.
func (t *TokenSource) Token() string {
	snap, err := t.store.Load()
	if err != nil {
		return ""
	}
	return snap.Token
}

// Clear removes the persisted snapshot. Invoked by the REST client when
// a request fails with an unauthorized status.
func (t *TokenSource) Clear() error {
	return t.store.Clear()
}
