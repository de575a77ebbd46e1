package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListAccountsTool(srv, svc)
	registerGetActiveAccountTool(srv, svc)
	registerSwitchAccountTool(srv, svc)
	registerListTagsTool(srv, svc)
	registerSetLimitTool(srv, svc)
}

func registerListAccountsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_accounts",
		mcp.WithDescription("List saved accounts in display order, with plan, tags and usage-limit status."),
		mcp.WithString("tag",
			mcp.Description("Tag name to list, or all or untagged. Defaults to all."),
		),
		mcp.WithString("filter",
			mcp.Description("Only accounts whose name contains this text, ignoring case."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Tag    string `json:"tag"`
			Filter string `json:"filter"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		accounts, err := svc.ListAccounts(ctx, args.Tag, args.Filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"accounts": accounts,
			"count":    len(accounts),
		})
	})
}

func registerGetActiveAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_active_account",
		mcp.WithDescription("Report which saved account the browser session is signed in as."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ActiveAccount(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSwitchAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"switch_account",
		mcp.WithDescription("Sign the browser session in as a saved account."),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name, or a unique prefix of its name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("account")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SwitchAccount(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListTagsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tags",
		mcp.WithDescription("List tags with the number of accounts carrying each."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := svc.ListTags(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tags":  tags,
			"count": len(tags),
		})
	})
}

func registerSetLimitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_available_at",
		mcp.WithDescription("Record when an account's usage limit resets, or clear it."),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name, or a unique prefix of its name."),
		),
		mcp.WithString("in",
			mcp.Description("Time until the reset such as 5h, 90m or 1d2h. Defaults to 5h."),
		),
		mcp.WithString("at",
			mcp.Description("Wall-clock reset time such as \"5 PM\" or \"11:30 PM\"."),
		),
		mcp.WithBoolean("clear",
			mcp.Description("Forget the reset time."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Account string `json:"account"`
			In      string `json:"in"`
			At      string `json:"at"`
			Clear   bool   `json:"clear"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SetLimit(ctx, LimitOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
