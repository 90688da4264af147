package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"exifstudio/internal/logging"
	"exifstudio/internal/metacache"
	"exifstudio/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithVersionTimeout bounds the bootstrap version probe.
func WithVersionTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.versionTimeout = timeout
		}
	}
}

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI wraps the exiftool command-line metadata engine. The binary is located
// and version-probed lazily on first use; concurrent first callers share one
// bootstrap attempt.
type CLI struct {
	binary         string
	versionTimeout time.Duration
	logger         *slog.Logger

	latch   bootstrapLatch
	version string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:         "exiftool",
		versionTimeout: 10 * time.Second,
		logger:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	cli.logger = cli.logger.With("component", "engine")
	return cli
}

// EnsureReady performs the one-time engine bootstrap: locate the binary and
// probe its version. Idempotent; a failed attempt may be retried by a later
// call.
func (c *CLI) EnsureReady(ctx context.Context) error {
	return c.latch.run(ctx, c.bootstrap)
}

func (c *CLI) bootstrap(ctx context.Context) error {
	resolved, err := exec.LookPath(c.binary)
	if err != nil {
		return services.Wrap(services.ErrEngineInit, "engine", "bootstrap", fmt.Sprintf("locate %s", c.binary), err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.versionTimeout)
	defer cancel()

	out, err := commandContext(probeCtx, resolved, "-ver").Output()
	if err != nil {
		return services.Wrap(services.ErrEngineInit, "engine", "bootstrap", fmt.Sprintf("probe %s version", c.binary), err)
	}
	c.version = strings.TrimSpace(string(out))
	c.logger.Info("metadata engine ready", "binary", resolved, "version", c.version)
	return nil
}

// Version returns the probed engine version, empty before bootstrap.
func (c *CLI) Version() string {
	return c.version
}

// contextLogger enriches the client logger with workflow annotations carried
// on the context.
func (c *CLI) contextLogger(ctx context.Context) *slog.Logger {
	logger := c.logger
	if workflow, ok := services.WorkflowFromContext(ctx); ok {
		logger = logger.With("workflow", workflow)
	}
	if fileID, ok := services.FileIDFromContext(ctx); ok {
		logger = logger.With("file_id", fileID)
	}
	return logger
}

// Read decodes metadata from raw bytes via `exiftool -json -n`. Engine
// failures degrade to the synthetic-only entry; only context cancellation
// propagates as an error.
func (c *CLI) Read(ctx context.Context, data []byte, meta FileMeta) (metacache.Metadata, error) {
	degraded := metacache.New(meta.Name, meta.Size, meta.MIMEType)
	logger := c.contextLogger(ctx)

	if err := c.EnsureReady(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("decode degraded to synthetic metadata", "file", meta.Name, "code", services.Code(err), "error", err)
		return degraded, nil
	}

	cmd := commandContext(ctx, c.binary, "-json", "-n", "-")
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		wrapped := services.Wrap(services.ErrDecode, "engine", "read", strings.TrimSpace(stderr.String()), err)
		logger.Warn("decode degraded to synthetic metadata", "file", meta.Name, "code", services.Code(wrapped), "error", wrapped)
		return degraded, nil
	}

	parsed, err := parseReadOutput(stdout.Bytes())
	if err != nil {
		wrapped := services.Wrap(services.ErrDecode, "engine", "read", "parse engine output", err)
		logger.Warn("decode degraded to synthetic metadata", "file", meta.Name, "code", services.Code(wrapped), "error", wrapped)
		return degraded, nil
	}

	md := degraded
	for key, value := range parsed {
		if metacache.IsSynthetic(key) {
			continue
		}
		md[key] = value
	}
	return md, nil
}

// Write applies tag changes through a temp copy and returns the new content.
func (c *CLI) Write(ctx context.Context, data []byte, meta FileMeta, changes TagChanges) ([]byte, error) {
	if len(changes) == 0 {
		return nil, services.Wrap(services.ErrWrite, "engine", "write", "no tag changes supplied", nil)
	}
	args := make([]string, 0, len(changes))
	for _, name := range sortedTagNames(changes) {
		args = append(args, tagArgs(name, changes[name])...)
	}
	return c.rewrite(ctx, "write", data, meta, args)
}

// ClearTag removes a single tag and returns the new content.
func (c *CLI) ClearTag(ctx context.Context, data []byte, meta FileMeta, tagName string) ([]byte, error) {
	return c.rewrite(ctx, "clear-tag", data, meta, []string{"-" + tagName + "="})
}

// ClearAll strips every writable tag via `-all=` and returns the new content.
func (c *CLI) ClearAll(ctx context.Context, data []byte, meta FileMeta) ([]byte, error) {
	return c.rewrite(ctx, "clear-all", data, meta, []string{"-all="})
}

// rewrite runs exiftool against a temp copy of the input and reads the result
// back, so caller-supplied bytes are never touched and failures never expose
// partial content.
func (c *CLI) rewrite(ctx context.Context, operation string, data []byte, meta FileMeta, tagArgs []string) ([]byte, error) {
	if err := c.EnsureReady(ctx); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "exifstudio-engine-")
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "engine", operation, "create temp dir", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, tempFileName(meta.Name))
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return nil, services.Wrap(services.ErrWrite, "engine", operation, "stage temp copy", err)
	}

	args := append([]string{"-overwrite_original"}, tagArgs...)
	args = append(args, target)

	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, services.Wrap(services.ErrWrite, "engine", operation, strings.TrimSpace(stderr.String()), err)
	}

	result, err := os.ReadFile(target)
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "engine", operation, "read result", err)
	}
	return result, nil
}

func tempFileName(name string) string {
	base := filepath.Base(name)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "input"
	}
	return base
}

func sortedTagNames(changes TagChanges) []string {
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tagArgs renders one tag change as exiftool arguments. Array values become
// repeated assignments; scalars are coerced to their string form at this
// boundary only.
func tagArgs(name string, value any) []string {
	switch values := value.(type) {
	case []any:
		args := make([]string, 0, len(values))
		for _, v := range values {
			args = append(args, "-"+name+"="+coerceValue(v))
		}
		return args
	default:
		return []string{"-" + name + "=" + coerceValue(value)}
	}
}

func coerceValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

var _ Client = (*CLI)(nil)
