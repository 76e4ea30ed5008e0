package mcp

// DaemonStatusInput is the input for the daemon_status tool.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the output for the daemon_status tool.
type DaemonStatusOutput struct {
	EngineBackend string `json:"engine_backend"`
	Toolkit       string `json:"toolkit"`
	DisplayCount  int    `json:"display_count"`
	FrameCount    int    `json:"frame_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one open display connection.
type DisplayInfo struct {
	Name       string `json:"name"`
	Backend    string `json:"backend"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Planes      int    `json:"planes"`
	ColorCells  int    `json:"color_cells"`
	VisualClass string `json:"visual_class"`
	RefCount    int    `json:"ref_count"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// OpenDisplayInput is the input for the open_display tool.
type OpenDisplayInput struct {
	Name string `json:"name,omitempty" jsonschema:"Display name to open (default: the daemon's configured default, usually :0). Opening always creates a new connection, even under a name already in use."`
}

// CloseDisplayInput is the input for the close_display tool.
type CloseDisplayInput struct {
	Name string `json:"name" jsonschema:"required,Display name to close. Fails while frames are still bound to the connection."`
}

// CloseDisplayOutput is the output for the close_display tool.
type CloseDisplayOutput struct {
	Closed bool `json:"closed"`
}

// ListFramesInput is the input for the list_frames tool.
type ListFramesInput struct{}

// FrameInfo describes one bound frame.
type FrameInfo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Display     string `json:"display"`
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	PixelWidth  int    `json:"pixel_width"`
	PixelHeight int    `json:"pixel_height"`
	Focused     bool   `json:"focused"`
}

// ListFramesOutput is the output for the list_frames tool.
type ListFramesOutput struct {
	Frames []FrameInfo `json:"frames"`
}

// ResolveColorInput is the input for the resolve_color tool.
type ResolveColorInput struct {
	Name string `json:"name" jsonschema:"required,Color name (e.g. white) or #RRGGBB hex spec"`
}

// ResolveColorOutput is the output for the resolve_color tool.
type ResolveColorOutput struct {
	Red   uint16 `json:"red"`
	Green uint16 `json:"green"`
	Blue  uint16 `json:"blue"`
	Pixel uint32 `json:"pixel"`
}
