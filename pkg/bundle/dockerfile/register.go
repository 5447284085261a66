package dockerfile

import (
	"github.com/NVIDIA/mlready/pkg/bundle"
)

func init() {
	// Register dockerfile bundler factory in global registry
	bundle.MustRegister(Name, func(cfg bundle.Config) bundle.Bundler {
		return New(cfg)
	})
}
