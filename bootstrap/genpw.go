package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/ssh/terminal"
)

// GenPassword prints a bcrypt hash for a web user's hashed_password.
func GenPassword() int {
	fmt.Fprintf(os.Stderr, "Password: ")
	passwordBytes, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintf(os.Stderr, "\n")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read password: %s\n", err)
		return ExitError
	}
	password := strings.TrimSpace(string(passwordBytes))
	if password == "" {
		fmt.Fprintf(os.Stderr, "empty password\n")
		return ExitError
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot hash password: %s\n", err)
		return ExitError
	}
	fmt.Println(string(hashedPassword))
	return ExitOk
}
