package kernel

// Endpoint identifies where a message came from.
type Endpoint uint8

const (
	EPDevice Endpoint = iota
	EPWeb
	EPConsole
)

func (e Endpoint) String() string {
	switch e {
	case EPDevice:
		return "device"
	case EPWeb:
		return "web"
	case EPConsole:
		return "console"
	default:
		return "?"
	}
}
