package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	NewReservation(ctx context.Context) error
	ListReservations(ctx context.Context) error
	EditReservation(ctx context.Context, id string) error
	DeleteReservation(ctx context.Context, id string) error
	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	Info(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the laboratory CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	Not logged in:
//	  - help              show available commands
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - new               book the laboratory
//	  - (l)ist            list reservations
//	  - edit <id>         edit a reservation
//	  - delete <id>       delete a reservation
//	  - info              about the system
//	  - logout            end the session
//
//	Administrators also:
//	  - users             list accounts
//	  - adduser           create an account
//	  - edituser <id>     edit an account
//	  - deluser <id>      delete an account
//
// Handlers print their own outcome, so errors returned by them are I/O
// errors on the prompts and only end the loop at EOF.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lab %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn(), a.isAdmin()))

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "new":
			cmdErr = a.NewReservation(ctx)

		case "l", "list":
			cmdErr = a.ListReservations(ctx)

		case "edit", "delete", "edituser", "deluser":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Uso: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "edit":
				cmdErr = a.EditReservation(ctx, args[0])
			case "delete":
				cmdErr = a.DeleteReservation(ctx, args[0])
			case "edituser":
				cmdErr = a.EditUser(ctx, args[0])
			case "deluser":
				cmdErr = a.DeleteUser(ctx, args[0])
			}

		case "users":
			cmdErr = a.ListUsers(ctx)

		case "adduser":
			cmdErr = a.AddUser(ctx)

		case "info":
			cmdErr = a.Info(ctx)

		case "exit", "quit":
			printlnFn("¡Hasta luego!")
			return

		default:
			printlnFn("Comando desconocido:", cmd)
		}

		if errors.Is(cmdErr, io.EOF) {
			return
		}
	}
}

func helpText(loggedIn, admin bool) string {
	if !loggedIn {
		return "Comandos disponibles: login, exit"
	}
	cmds := "Comandos disponibles: new, (l)ist, edit <id>, delete <id>"
	if admin {
		cmds += ", users, adduser, edituser <id>, deluser <id>"
	}
	return cmds + ", info, logout, exit"
}
