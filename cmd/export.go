package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/passvault/internal/git"
	"github.com/illarion/passvault/internal/security"
)

// Export writes an encrypted envelope of all credentials to file, or to
// stdout when file is empty.
func Export(ctx context.Context, file string) {
	app := MustOpenApp()
	defer app.Close()
	tr := app.Transfer(ctx)

	blob, err := tr.Export(ctx)
	if err != nil {
		HandleError(err)
	}

	if file == "" {
		fmt.Println(blob)
		return
	}

	wd, err := security.Open(".")
	if err != nil {
		HandleError(err)
	}
	defer wd.Close()

	if err := wd.WriteFile(file, []byte(blob+"\n")); err != nil {
		HandleError(err)
	}

	fmt.Printf("Exported to %s\n", file)
	if warning := git.Check(wd.Path(), file).Warning(); warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}
}
