package views

// RenderResponseLabel renders the line printed above each reply.
func RenderResponseLabel(label string) string {
	return ResponseLabelStyle.Render(label)
}

// RenderError renders a per-prompt failure.
func RenderError(msg string) string {
	return ErrorStyle.Render(msg)
}

// RenderToolList renders the startup list of available tools.
func RenderToolList(list string) string {
	if list == "" {
		return ""
	}
	return ToolHeaderStyle.Render("Available tools:") + "\n" + ToolListStyle.Render(list)
}
