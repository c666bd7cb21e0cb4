package telegram

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// SendMessageToDefaultChannel posts a MarkdownV2 message to the configured channel
	SendMessageToDefaultChannel(msg string) error
}

// Nop drops every message. It stands in when no bot token is configured.
type Nop struct{}

var _ Client = Nop{}

func (Nop) SendMessageToDefaultChannel(string) error {
	return nil
}
