package settings

// BotSettings are injected into generated echo bots.
type BotSettings struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}
