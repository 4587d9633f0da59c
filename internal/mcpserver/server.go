// Package mcpserver exposes SONAR records and extraction as Model Context
// Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jd3600/sonar/internal/archive"
	"github.com/jd3600/sonar/internal/store"
	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Collector is the part of the store the tools drive.
type Collector interface {
	Collect(ctx context.Context) (store.CollectResult, error)
	Status(ctx context.Context) ([]store.StatusEntry, error)
}

// Records loads the shared collection.
type Records interface {
	Load() ([]types.Record, error)
}

// Config holds the collaborators of the MCP server. Archive is optional.
type Config struct {
	Version    string
	Collector  Collector
	Records    Records
	Archive    archive.Archive
	Assemblers map[types.MediaKind]template.Assembler
}

// NewServer creates the MCP server with every SONAR tool and resource.
func NewServer(cfg Config) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"SONAR",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerExtractTool(s, cfg.Assemblers)
	registerRecordsTool(s, cfg.Records)
	registerCollectTool(s, cfg.Collector)
	if cfg.Archive != nil {
		registerSpeakersTool(s, cfg.Archive)
	}
	registerStatusResource(s, cfg.Collector)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func optionalKind(req mcp.CallToolRequest) (types.MediaKind, error) {
	v := req.GetString("type", "")
	if v == "" {
		return "", nil
	}
	return types.ParseMediaKind(v)
}

// --- Tools ---

func registerExtractTool(s *server.MCPServer, assemblers map[types.MediaKind]template.Assembler) {
	tool := mcp.NewTool("sonar_extract",
		mcp.WithDescription("Extract speakers, political camps, topics and a summary from a free-form media analysis text. Nothing is stored."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Media kind of the analysed content"),
			mcp.Enum("audio", "video"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Analysis text as returned by the model"),
		),
		mcp.WithString("filename",
			mcp.Description("Source media filename to put on the record"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindStr, err := req.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError("type is required"), nil
		}
		kind, err := types.ParseMediaKind(kindStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		a, ok := assemblers[kind]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("pipeline %s is disabled", kind)), nil
		}

		filename := req.GetString("filename", "")
		return jsonResult(a.Build(template.Input{Filename: filename, Text: text}))
	})
}

func registerRecordsTool(s *server.MCPServer, recs Records) {
	tool := mcp.NewTool("sonar_records",
		mcp.WithDescription("List the collected analysis records, optionally for one media kind."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("type",
			mcp.Description("Only return records of this media kind"),
			mcp.Enum("audio", "video"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := optionalKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		all, err := recs.Load()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load collection: %v", err)), nil
		}

		out := make([]types.Record, 0, len(all))
		for _, r := range all {
			if kind == "" || r.MediaKind == kind {
				out = append(out, r)
			}
		}
		return jsonResult(out)
	})
}

func registerCollectTool(s *server.MCPServer, c Collector) {
	tool := mcp.NewTool("sonar_collect",
		mcp.WithDescription("Merge pending records into the shared collection, skipping ids already present."),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := c.Collect(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("collect: %v", err)), nil
		}
		return jsonResult(res)
	})
}

func registerSpeakersTool(s *server.MCPServer, arc archive.Archive) {
	tool := mcp.NewTool("sonar_speakers",
		mcp.WithDescription("Speaking time per political camp across archived records, or the appearances of one speaker when name is given."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("name",
			mcp.Description("Part of a speaker name"),
		),
		mcp.WithString("type",
			mcp.Description("Restrict camp totals to one media kind"),
			mcp.Enum("audio", "video"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if name := req.GetString("name", ""); name != "" {
			apps, err := arc.Appearances(ctx, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("query appearances: %v", err)), nil
			}
			return jsonResult(apps)
		}

		kind, err := optionalKind(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		stats, err := arc.AffiliationStats(ctx, kind)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query camps: %v", err)), nil
		}
		return jsonResult(stats)
	})
}

// --- Resources ---

func registerStatusResource(s *server.MCPServer, c Collector) {
	resource := mcp.NewResource(
		"sonar://status",
		"Pending records",
		mcp.WithResourceDescription("Records analysed but not yet collected."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		status, err := c.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("list pending records: %w", err)
		}
		data, _ := json.MarshalIndent(map[string]interface{}{
			"pending": status,
			"count":   len(status),
		}, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}
