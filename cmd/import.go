package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/passvault/internal/security"
)

// Import stores the credentials from an export file. With dryRun the
// changes are shown and nothing is written.
func Import(ctx context.Context, file string, dryRun bool) {
	app := MustOpenApp()
	defer app.Close()
	tr := app.Transfer(ctx)

	wd, err := security.Open(".")
	if err != nil {
		HandleError(err)
	}
	defer wd.Close()

	data, err := wd.ReadFile(file)
	if err != nil {
		HandleError(err)
	}

	if dryRun {
		diff, err := tr.Preview(ctx, string(data))
		if err != nil {
			HandleError(err)
		}
		if diff == "" {
			fmt.Println("Nothing to import")
			return
		}
		fmt.Print(diff)
		return
	}

	n, err := tr.Import(ctx, string(data))
	if err != nil {
		if n > 0 {
			fmt.Printf("Imported %d credential(s) before failing\n", n)
		}
		HandleError(err)
	}
	fmt.Printf("Imported %d credential(s)\n", n)
}
