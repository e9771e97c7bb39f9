package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.email != "" {
		return fmt.Sprintf("(%s)", a.email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to HabitKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("hk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: trackers, newtracker, add, entries, stats, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "trackers":
			a.ListTrackers(ctx)
		case "newtracker":
			a.NewTracker(ctx)
		case "add":
			a.AddEntry(ctx)
		case "entries":
			a.ListEntries(ctx)
		case "stats":
			a.Stats(ctx)
		case "logout":
			a.Logout()
		case "exit", "quit":
			return
		default:
			fmt.Println("Unknown command:", parts[0])
		}
	}
}
