package oauth

// Registry is the static credential registry mapping client IDs to secrets.
//
// It is populated once from config and never mutated, so reads need no
// locking.
type Registry struct {
	secrets map[string]string
}

// NewRegistry creates a credential registry from the configured clients.
func NewRegistry(clients []Client) *Registry {
	secrets := make(map[string]string, len(clients))
	for _, c := range clients {
		secrets[c.ID] = c.Secret
	}
	return &Registry{secrets: secrets}
}

// Known reports whether a client ID is registered.
func (r *Registry) Known(clientID string) bool {
	_, ok := r.secrets[clientID]
	return ok
}

// Authenticate validates a client ID and secret pair.
//
// Returns:
//   - error: ErrInvalidClient if the client is unknown or the secret does
//     not match, nil otherwise
//
// Unknown clients deliberately map to ErrInvalidClient here (not
// ErrUnknownClient): at the token endpoint a missing client and a wrong
// secret are indistinguishable to the caller, both are 401 invalid_client.
func (r *Registry) Authenticate(clientID, clientSecret string) error {
	secret, ok := r.secrets[clientID]
	if !ok || secret != clientSecret {
		return ErrInvalidClient
	}
	return nil
}
