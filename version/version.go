package version

// Name is the binary name shown by the CLI
const Name = "alexa-eolia"

// Version is the Major.Minor.Patch tag from git, set with
// -ldflags "-X github.com/jake-scott/alexa-eolia/version.Version=..."
var Version string = "dev"
