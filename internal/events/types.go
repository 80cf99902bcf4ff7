package events

// Settings events, published on ChannelAnimationSettings.
const (
	EventTypeSettingsUpdated  = "settings.updated"
	EventTypeSettingsRestored = "settings.restored"
	EventTypeSettingsApplied  = "settings.applied"
	EventTypeSettingsImported = "settings.imported"
)

const ChannelAnimationSettings = "channel:animation-settings"

// EventTypeSettingsSnapshot is sent once to each websocket client on connect.
const EventTypeSettingsSnapshot = "settings.snapshot"
