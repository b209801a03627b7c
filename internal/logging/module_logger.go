package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	rootModule       = "sitecms"
	settingsModule   = "sitecms.settings"
	checkoutModule   = "sitecms.checkout"
	revalidateModule = "sitecms.revalidate"
	transferModule   = "sitecms.transfer"
	httpModule       = "sitecms.http"
)

const (
	fieldContentType = "content_type"
	fieldDocPath     = "doc_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

func SettingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, settingsModule)
}

func CheckoutLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, checkoutModule)
}

func RevalidateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, revalidateModule)
}

func TransferLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, transferModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithDocument tags a logger with the content type and document path a
// settings operation works on. Empty values are ignored.
func WithDocument(logger interfaces.Logger, contentType, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(contentType); trimmed != "" {
		fields[fieldContentType] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocPath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
