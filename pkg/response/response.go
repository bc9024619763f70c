package response

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"
	"strings"

	"sla-srv/pkg/discord"
	"sla-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a successful envelope wrapping data.
func NewOKResp(data any) Resp {
	return Resp{
		Success: true,
		Message: MessageSuccess,
		Data:    data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Created sends 201 JSON with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(parseError(errors.NewUnauthorizedHTTPError(), c, nil))
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	c.JSON(parseError(errors.NewForbiddenHTTPError(), c, nil))
}

func parseError(err error, c *gin.Context, d discord.IDiscord) (int, Resp) {
	switch parsedErr := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   ValidationErrorMsg,
			Error:     parsedErr.Error(),
		}
	case *errors.ValidationErrorCollector:
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Message:   ValidationErrorMsg,
			Error:     parsedErr.Error(),
			Errors:    parsedErr.Errors(),
		}
	case *errors.HTTPError:
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Error:     parsedErr.Message,
		}
	default:
		if d != nil && err != nil {
			stackTrace := captureStackTrace()
			sendDiscordMessageAsync(d, buildInternalServerErrorDataForReportBug(c, err.Error(), stackTrace))
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Error:     DefaultErrorMessage,
		}
	}
}

// Error sends the error response derived from err. Unknown errors are 500 and
// reported to Discord when d is set.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	statusCode, resp := parseError(err, c, d)
	c.JSON(statusCode, resp)
}

// ErrorWithMap looks up err in eMap (exact match first, then errors.Is) and
// sends the corresponding HTTPError, else falls back to Error.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping, d discord.IDiscord) {
	if httpErr, ok := eMap[err]; ok {
		Error(c, httpErr, nil)
		return
	}
	for target, httpErr := range eMap {
		if stderrors.Is(err, target) {
			Error(c, httpErr, nil)
			return
		}
	}
	Error(c, err, d)
}

// PanicError handles panic recovery and sends error response.
func PanicError(c *gin.Context, err any, d discord.IDiscord) {
	if errVal, ok := err.(error); ok {
		Error(c, errVal, d)
		return
	}
	Error(c, fmt.Errorf("%v", err), d)
}

func captureStackTrace() []string {
	var pcs [DefaultStackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	var stackTrace []string
	for {
		frame, more := frames.Next()
		stackTrace = append(stackTrace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}
	return stackTrace
}

func sendDiscordMessageAsync(d discord.IDiscord, message string) {
	go func() {
		for _, msg := range splitMessageForDiscord(message) {
			if err := d.ReportBug(context.Background(), msg); err != nil {
				log.Printf("pkg.response.sendDiscordMessageAsync.ReportBug: %v\n", err)
			}
		}
	}()
}

func splitMessageForDiscord(message string) []string {
	var chunks []string
	var current string
	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if len(current)+len(line) > DiscordMaxMessageLen {
			if current != "" {
				chunks = append(chunks, strings.TrimSuffix(current, "\n"))
				current = ""
			}
			for len(line) > DiscordMaxMessageLen {
				chunks = append(chunks, line[:DiscordMaxMessageLen])
				line = line[DiscordMaxMessageLen:]
			}
		}
		current += line
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSuffix(current, "\n"))
	}
	return chunks
}

func buildInternalServerErrorDataForReportBug(c *gin.Context, errString string, backtrace []string) string {
	var sb strings.Builder
	sb.WriteString("================ SLA SERVICE ERROR ================\n")
	if c != nil && c.Request != nil {
		sb.WriteString(fmt.Sprintf("Route   : %s\n", c.Request.URL.String()))
		sb.WriteString(fmt.Sprintf("Method  : %s\n", c.Request.Method))
		sb.WriteString("---------------------------------------------------\n")
		if params := c.Request.URL.Query().Encode(); params != "" {
			sb.WriteString(fmt.Sprintf("Params  : %s\n", params))
		}
		if c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil && len(bodyBytes) > 0 {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				sb.WriteString("Body    :\n")
				var prettyBody bytes.Buffer
				if err := json.Indent(&prettyBody, bodyBytes, "    ", "  "); err == nil {
					sb.WriteString(prettyBody.String() + "\n")
				} else {
					sb.WriteString("    " + string(bodyBytes) + "\n")
				}
				sb.WriteString("---------------------------------------------------\n")
			}
		}
	}
	sb.WriteString(fmt.Sprintf("Error   : %s\n", errString))
	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, line))
		}
	}
	sb.WriteString("===================================================\n")
	return sb.String()
}
