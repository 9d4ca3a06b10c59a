package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tapebf/configs"
	"github.com/reusee/tapebf/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"tapebf.cue",
	".tapebf.cue",
}

// ConfigDirs lists the directories searched for config files, in precedence order.
type ConfigDirs []string

func (Module) ConfigDirs() (ret ConfigDirs) {
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}
	ret = append(ret, "/etc")
	return
}

func (Module) ConfigsLoader(
	dirs ConfigDirs,
	logger logs.Logger,
) configs.Loader {
	var paths []string
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
