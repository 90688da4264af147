package config

const (
	defaultWorkspaceDir         = "~/.local/share/exifstudio/workspace"
	defaultLogDir               = "~/.local/share/exifstudio/logs"
	defaultExportDir            = "~/.local/share/exifstudio/exports"
	defaultEngineBinary         = "exiftool"
	defaultEngineVersionTimeout = 10
	defaultMaxFileSizeMiB       = 100
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
			ExportDir:    defaultExportDir,
		},
		Engine: Engine{
			Binary:         defaultEngineBinary,
			VersionTimeout: defaultEngineVersionTimeout,
		},
		Ingest: Ingest{
			MaxFileSizeMiB: defaultMaxFileSizeMiB,
			Previews:       true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Ingest:         true,
			Tags:           true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
