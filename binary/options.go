package binary

type Option func(b *Binary)

// WithCacheRoot sets the directory archives are downloaded to and extracted in.
// Defaults to "./.dist".
func WithCacheRoot(dir string) Option {
	return func(b *Binary) {
		b.root = dir
	}
}

// WithPlatform overrides the host platform detected at runtime.
// It drives the launcher script extension as well as the GOOS and GOARCH
// values available for URL templates.
func WithPlatform(platform Platform) Option {
	return func(b *Binary) {
		b.platform = platform
	}
}

// WithPolicy replaces the version selection policy.
func WithPolicy(policy Policy) Option {
	return func(b *Binary) {
		b.policy = policy
	}
}

// WithOverrideVersion sets the version provisioned instead of the pinned one
// when the catalog advertises a newer release.
func WithOverrideVersion(version string) Option {
	return func(b *Binary) {
		b.policy.Override = version
	}
}

// WithSemanticComparison compares versions segment by segment instead of
// concatenating their digits.
func WithSemanticComparison() Option {
	return func(b *Binary) {
		b.policy.Comparison = Semantic
	}
}
