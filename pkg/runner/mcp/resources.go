package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerAccountsResource(srv, svc)
	registerTagsResource(srv, svc)
	registerAccountTemplate(srv, svc)
}

func registerAccountsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"switcher://accounts",
		"Accounts",
		mcp.WithResourceDescription("Every saved account in display order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		accounts, err := svc.ListAccounts(ctx, "", "")
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"accounts": accounts,
			"count":    len(accounts),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTagsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"switcher://tags",
		"Tags",
		mcp.WithResourceDescription("Tags with their colors and account counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tags, err := svc.ListTags(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"tags":  tags,
			"count": len(tags),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerAccountTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"switcher://accounts/{name}",
		"Account Details",
		mcp.WithTemplateDescription("A single account looked up by name."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, _ := request.Params.Arguments["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("account name is required")
		}

		dto, err := svc.Account(ctx, name)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"account": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
