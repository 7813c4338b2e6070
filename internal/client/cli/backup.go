package cli

import (
	"context"
	"fmt"
)

func (a *App) backupVault(ctx context.Context) {

	if err := a.backup.Upload(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Vault uploaded to", a.config.S3Bucket)
}

// restoreVault replaces the local vault with the backed-up copy. The session
// is locked afterwards because the restored vault may use a different master
// password.
func (a *App) restoreVault(ctx context.Context) {

	answer, err := GetSimpleText(a.reader, "This replaces the local vault with the backup. Type 'yes' to confirm", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if err := a.backup.Download(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	a.session.Logout()
	fmt.Fprintln(a.out, "Vault restored, log in again")
}
