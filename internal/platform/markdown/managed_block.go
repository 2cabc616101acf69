package markdown

import "strings"

func blockMarkers(name string) (string, string) {
	return "<!-- studyroutine:" + name + ":start -->", "<!-- studyroutine:" + name + ":end -->"
}

// ReplaceBlock swaps the generated block called name, or appends it when
// the body has none. Text outside the markers is left alone.
func (d *Document) ReplaceBlock(name, generated string) {
	startMarker, endMarker := blockMarkers(name)
	body := d.Body
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	switch {
	case start >= 0 && end > start:
		d.Body = body[:start] + block + body[end+len(endMarker):]
	case strings.TrimSpace(body) == "":
		d.Body = block + "\n"
	case strings.HasSuffix(body, "\n"):
		d.Body = body + "\n" + block + "\n"
	default:
		d.Body = body + "\n\n" + block + "\n"
	}
}
