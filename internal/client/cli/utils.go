package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func GetSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func GetPassword() ([]byte, error) {
	fmt.Println("Enter password")
	return readPassword(int(os.Stdin.Fd()))
}

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword
