package pyenv

import (
	"github.com/NVIDIA/mlready/pkg/bundle"
)

func init() {
	// Register pyenv bundler factory in global registry
	bundle.MustRegister(Name, func(cfg bundle.Config) bundle.Bundler {
		return New(cfg)
	})
}
