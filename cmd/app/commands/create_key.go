package commands

import (
	"fmt"
	"io"

	"github.com/allisson/demands/internal/config"
	cryptoService "github.com/allisson/demands/internal/crypto/service"
)

// RunCreateKey generates a 32-byte store key and prints it base64-encoded, ready to be
// set as the key override. The key file is left untouched.
//
// Output format (text):
//   - DEMANDS_APP_KEY="<base64-encoded-key>"
func RunCreateKey(writer io.Writer, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	encoded, err := cryptoService.GenerateEncodedKey()
	if err != nil {
		return err
	}

	if format == FormatJSON {
		return writeJSON(writer, map[string]string{"env": config.KeyEnvVar, "key": encoded})
	}

	_, err = fmt.Fprintf(writer,
		"# Store key override\n# Keep it secret: anyone holding it can read the data file and backups\n\n%s=\"%s\"\n",
		config.KeyEnvVar, encoded,
	)
	return err
}
