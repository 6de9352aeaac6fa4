package cmd

import (
	"context"
	"fmt"
	"os"
)

// Compact rewrites the vault file to reclaim unused space
func Compact(_ context.Context) {
	app := MustOpenApp()
	defer app.Close()

	info, err := os.Stat(app.Config.Path)
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := app.Store.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(app.Config.Path)
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
