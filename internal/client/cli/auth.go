package cli

import (
	"context"
	"fmt"

	"passkeeper/internal/common"
)

func (a *App) Login(ctx context.Context) {

	password, err := GetPassword("Enter master password: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(password); err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Vault unlocked")
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout()
	fmt.Fprintln(a.out, "Vault locked")
}

func (a *App) changeMasterPassword(ctx context.Context) {

	oldPassword, err := GetPassword("Enter current master password: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := GetPassword("Enter new master password: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(newPassword)

	if err := a.session.ChangeMasterPassword(oldPassword, newPassword); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Master password changed, all entries re-encrypted")
}
