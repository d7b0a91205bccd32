package itemstore

// Build information, set via ldflags:
//
//	go build -ldflags "-X github.com/aretw0/itemstore.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
