package event_bus

const (
	// VaultChanged is published after the vault's markdown files changed on
	// disk and view snapshots must be rebuilt from the current record set.
	VaultChanged EventType = "vault.changed"

	// ViewConfigChanged is published after a view's display configuration was
	// saved. Carries a ViewConfigChangedData payload.
	ViewConfigChanged EventType = "view.config.changed"
)

// ViewConfigChangedData identifies which view's configuration changed.
type ViewConfigChangedData struct {
	ViewID string
}
