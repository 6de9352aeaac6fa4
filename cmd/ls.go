package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/illarion/passvault/internal/model"
)

// List shows every stored credential without passwords
func List(ctx context.Context) {
	Search(ctx, "")
}

// Search shows credentials whose app name or username contains query
func Search(ctx context.Context, query string) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	creds, err := v.Search(ctx, query)
	if err != nil {
		HandleError(err)
	}

	if len(creds) == 0 {
		if query == "" {
			fmt.Println("No credentials stored")
		} else {
			fmt.Printf("No credentials match %q\n", query)
		}
		return
	}

	printCredentials(creds)
}

func printCredentials(creds []model.CredentialInfo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "APP\tUSERNAME\tUPDATED\tID")
	for _, c := range creds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.AppName, c.Username,
			c.UpdatedAt.Local().Format(time.DateTime), c.ID)
	}
	w.Flush()
}
