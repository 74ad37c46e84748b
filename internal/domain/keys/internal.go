package keys

// Internal Viper keys, set after validation.
const (
	HeadersParsed  string = "headers-parsed"
	FromDateParsed string = "from-date-parsed"
	ToDateParsed   string = "to-date-parsed"
)

// EnvPrefix is prepended to environment variable overrides (e.g. MDLOAD_OUTDIR).
const EnvPrefix = "MDLOAD"
