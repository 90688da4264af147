package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"exifstudio/internal/blobstore"
	"exifstudio/internal/config"
	"exifstudio/internal/logging"
	"exifstudio/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withSession opens the workspace, restores persisted files, and runs fn.
// The store is closed when fn returns.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(ctx context.Context, sess *session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	store, err := blobstore.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	sess := session.New(cfg, store, session.Options{Logger: logger})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sess.Restore(ctx); err != nil {
		return err
	}
	return fn(ctx, sess)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
