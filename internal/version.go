package internal

// Version is the service version reported by the health check. Release builds
// override it with -ldflags "-X smartsheetsvc/internal.Version=...".
var Version = "0.3.0"
