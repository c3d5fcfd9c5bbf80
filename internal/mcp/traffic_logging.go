package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const methodCallTool = "tools/call"

// trafficLoggingMiddleware logs every item tool call at info level with the
// tool name, duration and outcome. At debug level it also dumps the raw
// request and response of every method.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			debug := logger.Enabled(ctx, slog.LevelDebug)
			if method != methodCallTool && !debug {
				return next(ctx, method, req)
			}

			sessionID := safeSessionID(req)
			if debug {
				logger.Debug("mcp traffic", "direction", direction, "stage", "request", "method", method, "session_id", sessionID, "params", formatPayload(safeParams(req)))
			}

			start := time.Now()
			result, err := next(ctx, method, req)

			if method == methodCallTool {
				logger.Info("mcp tool call",
					"direction", direction,
					"tool", toolName(req),
					"session_id", sessionID,
					"duration", time.Since(start),
					"is_error", err != nil || toolFailed(result),
				)
			}

			if !debug || strings.HasPrefix(method, "notifications/") {
				return result, err
			}
			if err != nil {
				logger.Debug("mcp traffic", "direction", direction, "stage", "response", "method", method, "session_id", sessionID, "error", err)
			} else {
				logger.Debug("mcp traffic", "direction", direction, "stage", "response", "method", method, "session_id", sessionID, "result", formatPayload(result))
			}

			return result, err
		}
	}
}

// toolName reads the tool name from either side's call params.
func toolName(req sdkmcp.Request) string {
	switch p := safeParams(req).(type) {
	case *sdkmcp.CallToolParamsRaw:
		if p != nil {
			return p.Name
		}
	case *sdkmcp.CallToolParams:
		if p != nil {
			return p.Name
		}
	}
	return ""
}

func toolFailed(result sdkmcp.Result) bool {
	r, ok := result.(*sdkmcp.CallToolResult)
	return ok && r != nil && r.IsError
}

// The SDK's request accessors panic on some half-initialised requests
// (notifications without params), hence the recovers.
func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
