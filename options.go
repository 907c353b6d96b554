package evmlink

// LinkOption configures the Autolink operation.
type LinkOption func(*linkConfig)

// linkConfig holds configuration for Autolink.
type linkConfig struct {
	startAddress uint64
	addresses    map[string]uint64
	allocate     bool
}

// defaultLinkConfig returns the default link configuration.
func defaultLinkConfig() *linkConfig {
	return &linkConfig{
		startAddress: DefaultStartAddress,
		addresses:    make(map[string]uint64),
		allocate:     true,
	}
}

// WithStartAddress sets the first synthetic address handed out by the
// allocator. Default is DefaultStartAddress.
func WithStartAddress(start uint64) LinkOption {
	return func(c *linkConfig) {
		c.startAddress = start
	}
}

// WithLibraryAddresses supplies addresses for specific libraries. Supplied
// addresses take precedence over allocated ones, which lets a caller pin
// down libraries the resolver reported as unresolved or already deployed.
func WithLibraryAddresses(addresses map[string]uint64) LinkOption {
	return func(c *linkConfig) {
		for name, address := range addresses {
			c.addresses[name] = address
		}
	}
}

// WithoutAllocation disables synthetic address allocation. Only libraries
// covered by WithLibraryAddresses are linked; the rest keep their
// placeholders and are reported in the schedule as usual.
func WithoutAllocation() LinkOption {
	return func(c *linkConfig) {
		c.allocate = false
	}
}
