package panel

// ExampleParameters returns the sample parameter object shown when prompting
// for a tool's parameters. It is guidance only; unknown tools get {}.
func ExampleParameters(toolName string) map[string]any {
	switch toolName {
	case "website_monitor":
		return map[string]any{"url": "https://google.com", "expected_status": 200, "timeout": 10}
	case "email_sender":
		return map[string]any{"to": "user@example.com", "subject": "Test", "body": "Hello World"}
	case "http_client":
		return map[string]any{"url": "https://api.example.com", "method": "GET"}
	case "file_reader":
		return map[string]any{"path": "/path/to/file.txt"}
	case "database_query":
		return map[string]any{"query": "SELECT * FROM users LIMIT 5"}
	case "rss_feed_parser":
		return map[string]any{"url": "https://example.com/feed.xml", "max_items": 10}
	case "json_validator":
		return map[string]any{"data": map[string]any{"name": "test"}, "schema": map[string]any{"type": "object"}}
	default:
		return map[string]any{}
	}
}
