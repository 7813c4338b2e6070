package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(unlocked)"
	}
	return "(locked)"
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: add, list, show, search, delete, generate, export, passwd, backup, restore, clear, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, generate, restore, exit")
	}
}

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to PassKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Login(ctx)

	for {
		fmt.Fprintf(a.out, "pk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			a.printHelp()
		case "login":
			a.Login(ctx)
		case "add":
			a.add(ctx)
		case "list":
			a.list(ctx)
		case "show":
			a.show(ctx)
		case "search":
			a.search(ctx)
		case "delete":
			a.delete(ctx)
		case "generate":
			a.generate(ctx)
		case "export":
			a.export(ctx)
		case "passwd":
			a.changeMasterPassword(ctx)
		case "backup":
			a.backupVault(ctx)
		case "restore":
			a.restoreVault(ctx)
		case "clear":
			a.clearVault(ctx)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
