package configs

// AppVersion is reported in the User-Agent header and in traces.
const AppVersion = "1.0.0"
