package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"passkeeper/internal/vault"
)

func (a *App) printEntries(entries []*vault.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s\t%s\n", e.Account, e.Username)
	}
}

func (a *App) list(ctx context.Context) {
	entries, err := a.session.GetAll()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	a.printEntries(entries)
}

func (a *App) show(ctx context.Context) {

	account, err := GetSimpleText(a.reader, "Enter account name to show", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	secret, err := a.session.Reveal(account)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, secret)
}

func (a *App) search(ctx context.Context) {

	query, err := GetSimpleText(a.reader, "Enter search query", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	entries, err := a.session.Search(query)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	a.printEntries(entries)
}

func (a *App) export(ctx context.Context) {

	entries, err := a.session.Export()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	fmt.Fprintln(a.out, string(data))
}
