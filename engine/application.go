package engine

import (
	"github.com/spaghettifunk/virtcam/engine/config"
)

type ApplicationConfig struct {
	// The loaded configuration. Window, camera and projection settings come from here.
	Config *config.Config
	// Path of the config file to watch for changes. Empty disables hot reload.
	ConfigPath string
}
