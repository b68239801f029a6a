package palisade

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/aretw0/palisade.Version=...".
var Version = "0.1.0"
