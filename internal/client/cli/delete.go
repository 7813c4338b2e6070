package cli

import (
	"context"
	"fmt"
)

func (a *App) delete(ctx context.Context) {

	account, err := GetSimpleText(a.reader, "Enter account name to delete", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.session.Delete(account); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Deleted")
}

func (a *App) clearVault(ctx context.Context) {

	answer, err := GetSimpleText(a.reader, "This deletes ALL entries. Type 'yes' to confirm", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if err := a.session.ClearAll(); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Vault cleared and locked")
}
