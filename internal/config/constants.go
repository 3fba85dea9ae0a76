package config

// Default locations on the target host.
const (
	// DefaultProfile is the NixOS system profile new generations are added to.
	DefaultProfile = "/nix/var/nix/profiles/system"

	// DefaultRemoteHelper escalates privileges on the target before running
	// the given command. It is expected in the login user's home directory.
	DefaultRemoteHelper = "./maybe-sudo.sh"

	// DefaultSSHPort is used when a deployment file omits targetPort.
	DefaultSSHPort = 22
)

// Default local binaries.
const (
	DefaultSSHBinary            = "ssh"
	DefaultNixStoreBinary       = "nix-store"
	DefaultNixCopyClosureBinary = "nix-copy-closure"
)

// NoKeySentinel selects ambient SSH credentials instead of a supplied key.
const NoKeySentinel = "-"

// defaultBuildOptions are placed before any caller-supplied build options.
var defaultBuildOptions = []string{
	"--option", "extra-binary-caches", "https://cache.nixos.org/",
}

// DefaultBuildOptions returns a copy of the options every realize call starts with.
func DefaultBuildOptions() []string {
	return append([]string(nil), defaultBuildOptions...)
}
