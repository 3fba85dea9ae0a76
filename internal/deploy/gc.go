package deploy

import (
	"fmt"
	"strings"
)

// GarbageCollectPhase deletes old system generations and collects garbage
// on the target.
type GarbageCollectPhase struct{}

// Name implements the Phase interface.
func (p *GarbageCollectPhase) Name() string {
	return "gc"
}

// Run implements the Phase interface.
func (p *GarbageCollectPhase) Run(ctx *Context) error {
	tokens := ctx.Config.RetentionTokens()
	if len(tokens) == 0 {
		return fmt.Errorf("no generations selected for deletion")
	}

	ctx.Observer.Printf("[gc] Deleting generations %s...", strings.Join(tokens, " "))
	argv := append([]string{"nix-env", "--profile", ctx.Config.Tools.Profile, "--delete-generations"}, tokens...)
	if err := ctx.Session.Run(ctx, argv...); err != nil {
		return fmt.Errorf("failed to delete generations: %w", err)
	}

	ctx.Observer.Printf("[gc] Collecting garbage...")
	if err := ctx.Session.Run(ctx, "nix-store", "--gc"); err != nil {
		return fmt.Errorf("failed to collect garbage: %w", err)
	}
	return nil
}
