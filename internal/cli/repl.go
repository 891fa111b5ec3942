package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	Correct(ctx context.Context, docID string) error
	Delete(ctx context.Context, docID string) error
	List(ctx context.Context) error
	Search(ctx context.Context) error
	Ask(ctx context.Context) error
	Resources(ctx context.Context, place string) error
	Helplines() error
	Contacts(ctx context.Context) error
	AddContact(ctx context.Context) error
	DeleteContact(ctx context.Context, id string) error
	SetToken() error
}

// runREPL starts a simple read-eval-print loop for the MindLens CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	help                — show available commands
//	add                 — record a diary entry (interactive)
//	correct <doc_id>    — record a correction of an earlier entry
//	delete <doc_id>     — tombstone an entry
//	list                — list current entries
//	search              — semantic search over entries (interactive)
//	ask                 — ask a question grounded in the diary (interactive)
//	resources <place>   — find nearby mental health facilities
//	helplines           — show crisis helplines
//	contacts            — list emergency contacts
//	addcontact          — add or update an emergency contact
//	delcontact <id>     — remove an emergency contact
//	token               — enter the Hugging Face API token (no echo)
//	exit | quit         — leave the program
//
// Any errors returned by command handlers are reported here and the loop
// continues; a failed command never ends the session.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("mindlens> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			printlnFn("Available commands: add, correct <doc_id>, delete <doc_id>, list, search, ask, resources <place>, helplines, contacts, addcontact, delcontact <id>, token, exit")

		case "add":
			err = a.Add(ctx)

		case "correct":
			if len(args) == 0 {
				printlnFn("Usage: correct <doc_id>")
				continue
			}
			err = a.Correct(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <doc_id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "l", "list":
			err = a.List(ctx)

		case "search":
			err = a.Search(ctx)

		case "ask":
			err = a.Ask(ctx)

		case "resources":
			if len(args) == 0 {
				printlnFn("Usage: resources <place>")
				continue
			}
			err = a.Resources(ctx, strings.Join(args, " "))

		case "helplines":
			err = a.Helplines()

		case "contacts":
			err = a.Contacts(ctx)

		case "addcontact":
			err = a.AddContact(ctx)

		case "delcontact":
			if len(args) == 0 {
				printlnFn("Usage: delcontact <id>")
				continue
			}
			err = a.DeleteContact(ctx, args[0])

		case "token":
			err = a.SetToken()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
