package format

import "fmt"

type Format int8

const (
	Text Format = iota
	HTML
	JSON
)

func UnmarshalText(text string) (Format, error) {
	switch text {
	case "text", "txt":
		return Text, nil
	case "html":
		return HTML, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case JSON:
		return "json"
	default:
		return "text"
	}
}
