package mojang

import "context"

// MockVerifier is a SessionVerifier stand-in for tests: it returns a fixed
// profile (or a fixed error) regardless of the hash it's handed, the way the
// relay's test suite stands in for a real Mojang round trip.
type MockVerifier struct {
	Profile *GameProfile
	Err     error
}

func (m *MockVerifier) Verify(_ context.Context, _, _ string) (*GameProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Profile, nil
}
