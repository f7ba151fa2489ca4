package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	if svc.Assistant != nil {
		registerAssistantTools(srv, svc)
	}
}

func entryFieldOptions(required bool) []mcp.ToolOption {
	req := func() []mcp.PropertyOption {
		if required {
			return []mcp.PropertyOption{mcp.Required()}
		}
		return nil
	}
	return []mcp.ToolOption{
		mcp.WithString("title",
			append(req(), mcp.Description("Entry title."))...,
		),
		mcp.WithString("date",
			mcp.Description("Calendar date as YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("mood",
			append(req(),
				mcp.Description("Mood of the entry."),
				mcp.Enum(entry.MoodNames()...),
			)...,
		),
		mcp.WithString("content",
			append(req(), mcp.Description("Body of the reflection."))...,
		),
		mcp.WithString("prayerRequests",
			mcp.Description("Optional prayer requests."),
		),
		mcp.WithString("scriptureReference",
			mcp.Description("Optional scripture reference such as John 3:16."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags."),
		),
	}
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a new devotional journal entry."),
	}, entryFieldOptions(true)...)
	tool := mcp.NewTool("create_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var d entry.Draft
		if err := request.BindArguments(&d); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateEntry(ctx, d)
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Update fields of an existing entry. Omitted fields keep their value."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
	}, entryFieldOptions(false)...)
	tool := mcp.NewTool("update_entry", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := request.GetArguments()
		dto, err := svc.UpdateEntry(ctx, id, EntryPatch{
			Title:              optional(args, "title"),
			Date:               optional(args, "date"),
			Mood:               optional(args, "mood"),
			Content:            optional(args, "content"),
			PrayerRequests:     optional(args, "prayerRequests"),
			ScriptureReference: optional(args, "scriptureReference"),
			Tags:               optional(args, "tags"),
		})
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry. Requires confirm=true after asking the user: "+form.ConfirmDelete),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !request.GetBool("confirm", false) {
			return mcp.NewToolResultError("delete not confirmed"), nil
		}
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return toolError(err), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, newest first, optionally filtered."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against title, content and tags."),
		),
		mcp.WithString("mood",
			mcp.Description("Only entries with this mood."),
			mcp.Enum(entry.MoodNames()...),
		),
		mcp.WithString("range",
			mcp.Description("Only entries within this date range."),
			mcp.Enum(timeutil.Ranges()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		search := strings.TrimSpace(request.GetString("search", ""))
		mood := request.GetString("mood", "")
		dateRange := request.GetString("range", "")

		results, err := svc.ListEntries(ctx, search, mood, dateRange)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(dto)
	})
}

func registerAssistantTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"plan_quiet_time",
		mcp.WithDescription("Plan a structured quiet time for today."),
		mcp.WithNumber("duration",
			mcp.Description("Length in minutes (default 15)."),
			mcp.Min(1),
		),
		mcp.WithString("focus_area",
			mcp.Description("Optional focus such as patience or gratitude."),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return ask(svc, func(a assistant.Service) (string, error) {
			return a.QuietTime(ctx, assistant.QuietTimeRequest{
				Duration:  request.GetInt("duration", assistant.DefaultDuration),
				FocusArea: request.GetString("focus_area", ""),
			})
		})
	})

	srv.AddTool(mcp.NewTool(
		"recommend_books",
		mcp.WithDescription("Recommend Christian books for spiritual growth."),
		mcp.WithString("topic",
			mcp.Description("Optional topic."),
		),
		mcp.WithString("spiritual_level",
			mcp.Description("Reader's spiritual level."),
			mcp.Enum(assistant.Levels()...),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of books (default 3)."),
			mcp.Min(1),
			mcp.Max(10),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return ask(svc, func(a assistant.Service) (string, error) {
			return a.Books(ctx, assistant.BookRequest{
				Topic:          request.GetString("topic", ""),
				SpiritualLevel: request.GetString("spiritual_level", assistant.DefaultLevel),
				Count:          request.GetInt("count", assistant.DefaultCount),
			})
		})
	})

	srv.AddTool(mcp.NewTool(
		"bible_study",
		mcp.WithDescription("Write a Bible study guide for a passage."),
		mcp.WithString("passage",
			mcp.Required(),
			mcp.Description("Passage such as Romans 8:28-39."),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		passage, err := request.RequireString("passage")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return ask(svc, func(a assistant.Service) (string, error) {
			return a.Study(ctx, assistant.StudyRequest{Passage: passage})
		})
	})

	srv.AddTool(mcp.NewTool(
		"answer_question",
		mcp.WithDescription("Answer a question about Christianity from the Bible."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer."),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return ask(svc, func(a assistant.Service) (string, error) {
			return a.Answer(ctx, assistant.QuestionRequest{Question: question})
		})
	})
}

func ask(svc *Service, call func(assistant.Service) (string, error)) (*mcp.CallToolResult, error) {
	a, err := svc.assistant()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := call(a)
	if err != nil {
		return mcp.NewToolResultError(assistant.FailureText(err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// toolError surfaces validation messages the way the form alert shows them.
func toolError(err error) *mcp.CallToolResult {
	var verr *journal.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Message())
	}
	return mcp.NewToolResultError(err.Error())
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
