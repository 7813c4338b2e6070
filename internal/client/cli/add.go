package cli

import (
	"context"
	"fmt"
	"strconv"

	"passkeeper/internal/passgen"
)

func (a *App) add(ctx context.Context) {

	account, err := GetSimpleText(a.reader, "Enter account name (e.g. Gmail)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	secret, err := GetPassword("Enter password to store: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if score, hints := passgen.Score(string(secret)); len(hints) > 0 {
		fmt.Fprintf(a.out, "Password strength: %d\n", score)
		for _, h := range hints {
			fmt.Fprintln(a.out, "  -", h)
		}
	}

	if err := a.session.Put(account, username, string(secret)); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Saved")
}

func (a *App) generate(ctx context.Context) {

	answer, err := GetSimpleText(a.reader, "Password length (default 16)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	length := 16
	if answer != "" {
		length, err = strconv.Atoi(answer)
		if err != nil || length <= 0 {
			fmt.Fprintln(a.out, "Invalid length")
			return
		}
	}

	password, err := passgen.Generate(length, passgen.DefaultOptions())
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, password)
}
