package provider

// Identity is the immutable description of a logical connection target.
//
// Name is the logical label and the primary sharing-key component. Provider
// names a registered connection provider. ConnectionText is the
// provider-specific connection string and is opaque to everything but the
// provider itself.
type Identity struct {
	Name           string
	Provider       string
	ConnectionText string
}

// Valid reports whether the identity names both a connection and a provider.
func (id Identity) Valid() bool {
	return id.Name != "" && id.Provider != ""
}
