package main

import (
	"embed"
	"os"
	"path/filepath"
)

// The plotting runtime that generated programs link against, carried
// inside the compiler binary so `build -runtime` can drop it next to
// the generated C file.
//
//go:embed runtime/runtime_viz.c runtime/runtime_viz.h runtime/plot.gp
var runtimeAssets embed.FS

var runtimeAssetNames = []string{
	"runtime_viz.c",
	"runtime_viz.h",
	"plot.gp",
}

// WriteRuntimeAssets writes the embedded plotting runtime files into
// dir, overwriting existing copies.
func WriteRuntimeAssets(dir string) error {
	for _, name := range runtimeAssetNames {
		data, err := runtimeAssets.ReadFile("runtime/" + name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}
