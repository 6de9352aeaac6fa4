package cmd

import (
	"context"
	"fmt"
	"os"
)

// Remove deletes credentials by ID or app name
func Remove(ctx context.Context, refs []string) {
	if len(refs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no credentials specified")
		os.Exit(1)
	}

	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	for _, ref := range refs {
		id := resolveRef(ctx, v, ref)
		if err := v.DeleteCredential(ctx, id); err != nil {
			HandleError(err)
		}
		fmt.Printf("Removed %s\n", ref)
	}
}
