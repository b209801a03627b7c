package sitecms

import "github.com/goliatone/go-sitecms/internal/runtimeconfig"

var (
	ErrStoreProviderUnknown     = runtimeconfig.ErrStoreProviderUnknown
	ErrStoreDSNRequired         = runtimeconfig.ErrStoreDSNRequired
	ErrFirestoreProjectRequired = runtimeconfig.ErrFirestoreProjectRequired
	ErrMongoURIRequired         = runtimeconfig.ErrMongoURIRequired
	ErrAuthProviderUnknown      = runtimeconfig.ErrAuthProviderUnknown
	ErrAdminEmailsRequired      = runtimeconfig.ErrAdminEmailsRequired
	ErrStaticTokenRequired      = runtimeconfig.ErrStaticTokenRequired
	ErrHTTPAddressRequired      = runtimeconfig.ErrHTTPAddressRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config           = runtimeconfig.Config
	StoreConfig      = runtimeconfig.StoreConfig
	CacheConfig      = runtimeconfig.CacheConfig
	RevalidateConfig = runtimeconfig.RevalidateConfig
	AuthConfig       = runtimeconfig.AuthConfig
	PaymentsConfig   = runtimeconfig.PaymentsConfig
	MailConfig       = runtimeconfig.MailConfig
	MetaGenConfig    = runtimeconfig.MetaGenConfig
	HTTPConfig       = runtimeconfig.HTTPConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads the given dotenv files, when present, and the SITECMS_
// environment on top of the defaults.
func LoadConfig(files ...string) (Config, error) {
	return runtimeconfig.Load(files...)
}
