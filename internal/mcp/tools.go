package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/glyphbridge/internal/display"
)

func (s *Server) handleDaemonStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, DaemonStatusOutput{}, err
	}

	return nil, DaemonStatusOutput{
		EngineBackend: status.EngineBackend,
		Toolkit:       status.Toolkit,
		DisplayCount:  status.DisplayCount,
		FrameCount:    status.FrameCount,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	data, err := s.client.ListDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}

	return nil, displaysOutput(data.Displays), nil
}

func (s *Server) handleOpenDisplay(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenDisplayInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	data, err := s.client.OpenDisplay(args.Name)
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}

	return nil, displaysOutput(data.Displays), nil
}

func (s *Server) handleCloseDisplay(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseDisplayInput) (*mcpsdk.CallToolResult, CloseDisplayOutput, error) {
	if args.Name == "" {
		return nil, CloseDisplayOutput{}, fmt.Errorf("close_display requires a display name")
	}
	if err := s.client.CloseDisplay(args.Name); err != nil {
		return nil, CloseDisplayOutput{}, err
	}

	return nil, CloseDisplayOutput{Closed: true}, nil
}

func (s *Server) handleListFrames(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListFramesInput) (*mcpsdk.CallToolResult, ListFramesOutput, error) {
	data, err := s.client.ListFrames()
	if err != nil {
		return nil, ListFramesOutput{}, err
	}

	out := ListFramesOutput{Frames: make([]FrameInfo, 0, len(data.Frames))}
	for _, f := range data.Frames {
		out.Frames = append(out.Frames, FrameInfo{
			ID:          f.ID,
			Title:       f.Title,
			Display:     f.Display,
			Cols:        f.Cols,
			Rows:        f.Rows,
			PixelWidth:  f.PixelWidth,
			PixelHeight: f.PixelHeight,
			Focused:     f.Focused,
		})
	}
	return nil, out, nil
}

func (s *Server) handleResolveColor(_ context.Context, _ *mcpsdk.CallToolRequest, args ResolveColorInput) (*mcpsdk.CallToolResult, ResolveColorOutput, error) {
	if args.Name == "" {
		return nil, ResolveColorOutput{}, fmt.Errorf("resolve_color requires a color name or #RRGGBB spec")
	}
	col, err := s.client.ResolveColor(args.Name)
	if err != nil {
		return nil, ResolveColorOutput{}, err
	}

	return nil, ResolveColorOutput{
		Red:   col.Red,
		Green: col.Green,
		Blue:  col.Blue,
		Pixel: col.Pixel,
	}, nil
}

func displaysOutput(infos []display.Info) ListDisplaysOutput {
	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(infos))}
	for _, d := range infos {
		out.Displays = append(out.Displays, DisplayInfo{
			Name:        d.Name,
			Backend:     d.Backend,
			Width:       d.Width,
			Height:      d.Height,
			Planes:      d.Planes,
			ColorCells:  d.ColorCells,
			VisualClass: d.VisualClass,
			RefCount:    d.RefCount,
		})
	}
	return out
}
