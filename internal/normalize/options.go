package normalize

// Default prefixes of generated region names.
const (
	DefaultHeaderPrefix    = "__i"
	DefaultSignaturePrefix = "__f"
)

// Options configure a Normalizer.
type Options struct {
	// HeaderPrefix names regions generated for the self type of an impl.
	HeaderPrefix string
	// SignaturePrefix names regions generated for signature inputs.
	SignaturePrefix string
}

// DefaultOptions returns the __i / __f naming scheme.
func DefaultOptions() Options {
	return Options{HeaderPrefix: DefaultHeaderPrefix, SignaturePrefix: DefaultSignaturePrefix}
}

func (o Options) withDefaults() Options {
	if o.HeaderPrefix == "" {
		o.HeaderPrefix = DefaultHeaderPrefix
	}
	if o.SignaturePrefix == "" {
		o.SignaturePrefix = DefaultSignaturePrefix
	}
	return o
}
