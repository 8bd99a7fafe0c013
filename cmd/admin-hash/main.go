// Команда admin-hash печатает bcrypt-хеш пароля администратора
// для ADMIN_PASSWORD_HASH. Пароль берётся из аргумента или первой строки stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/password"
)

func main() {
	var pass string
	if len(os.Args) > 1 {
		pass = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "usage: admin-hash <password>")
			os.Exit(2)
		}
		pass = strings.TrimRight(line, "\r\n")
	}
	if pass == "" {
		fmt.Fprintln(os.Stderr, "password is empty")
		os.Exit(2)
	}

	hash, err := password.GetHash(pass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
