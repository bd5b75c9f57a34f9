package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load lee una wordlist de disco: una entrada por línea, recorta
// espacios, salta vacías y comentarios con '#'
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error abriendo wordlist: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error leyendo wordlist: %w", err)
	}
	return words, nil
}

// DefaultSubdomains lista mínima incluida para cuando no hay wordlist
var DefaultSubdomains = []string{
	"www", "mail", "ftp", "webmail", "smtp", "pop", "ns1", "ns2",
	"api", "dev", "staging", "test", "admin", "portal", "vpn", "cdn",
	"blog", "shop", "m", "app", "db", "git", "docs", "status",
}

// DefaultPaths rutas web candidatas por defecto
var DefaultPaths = []string{
	"admin", "login", "robots.txt", ".git/config", ".env",
	"backup", "config.php", "phpinfo.php", "server-status",
	"wp-login.php", "api/v1", "console",
}
