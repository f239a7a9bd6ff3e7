package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const DefaultFile = ".env"

// Load подхватывает файл окружения, если он есть. Уже выставленные
// переменные процесса не перетираются. false означает, что файла нет.
func Load(path string) (bool, error) {
	if path == "" {
		path = DefaultFile
	}

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// ParsePortFlag флаг -port перекрывает PORT из окружения. Только для http-сервиса:
// cli разбирает свои флаги через cobra.
func ParsePortFlag(args []string) error {
	flags := flag.NewFlagSet("service", flag.ContinueOnError)
	portFlag := flags.String("port", "", "Server port (overrides PORT environment variable)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *portFlag != "" {
		err := os.Setenv("PORT", *portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
